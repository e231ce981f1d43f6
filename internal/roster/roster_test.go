package roster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
)

func writeRosterFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write roster file: %v", err)
	}
	return path
}

// TestLoad tests parsing a roster file
func TestLoad(t *testing.T) {
	path := writeRosterFile(t, `
professionals:
  - name: "Dr. Lopez"
    specialty: "Psicología"
  - name: "Dra. Fernandez"
    specialty: "Psiquiatría"
`)

	ros, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	professionals := ros.Professionals()
	if len(professionals) != 2 {
		t.Fatalf("Expected 2 professionals, got %d", len(professionals))
	}
	if professionals[0].Name != "Dr. Lopez" {
		t.Errorf("Expected first professional 'Dr. Lopez', got '%s'", professionals[0].Name)
	}
	if professionals[1].Specialty != "Psiquiatría" {
		t.Errorf("Expected specialty 'Psiquiatría', got '%s'", professionals[1].Specialty)
	}

	names := ros.Names()
	if len(names) != 2 || names[0] != "Dr. Lopez" || names[1] != "Dra. Fernandez" {
		t.Errorf("Unexpected names: %v", names)
	}
}

// TestLoad_MissingFile tests that an absent roster yields an empty roster
func TestLoad_MissingFile(t *testing.T) {
	ros, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if len(ros.Professionals()) != 0 {
		t.Errorf("Expected empty roster, got %d professionals", len(ros.Professionals()))
	}
}

// TestLoad_MalformedYAML tests that broken YAML is an error
func TestLoad_MalformedYAML(t *testing.T) {
	path := writeRosterFile(t, "professionals: [unclosed")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

// TestHandlerListProfessionals tests the authenticated listing
func TestHandlerListProfessionals(t *testing.T) {
	path := writeRosterFile(t, `
professionals:
  - name: "Dr. Lopez"
    specialty: "Psicología"
`)
	ros, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	handler := NewHandler(ros)

	req := httptest.NewRequest(http.MethodGet, "/roster/professionals", nil)
	pr := &auth.Principal{Username: "reception1"}
	req = req.WithContext(auth.WithPrincipal(req.Context(), pr))

	rr := httptest.NewRecorder()
	handler.ListProfessionals(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var resp ListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Expected total 1, got %d", resp.Total)
	}
	if len(resp.Professionals) != 1 || resp.Professionals[0].Name != "Dr. Lopez" {
		t.Error("Expected Dr. Lopez in the listing")
	}
}

// TestHandlerListProfessionals_Unauthenticated tests the auth guard
func TestHandlerListProfessionals_Unauthenticated(t *testing.T) {
	handler := NewHandler(&Roster{})

	req := httptest.NewRequest(http.MethodGet, "/roster/professionals", nil)
	rr := httptest.NewRecorder()

	handler.ListProfessionals(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

// TestHandlerListProfessionals_EmptyRoster tests that an empty roster
// serializes as an empty array
func TestHandlerListProfessionals_EmptyRoster(t *testing.T) {
	handler := NewHandler(&Roster{})

	req := httptest.NewRequest(http.MethodGet, "/roster/professionals", nil)
	pr := &auth.Principal{Username: "reception1"}
	req = req.WithContext(auth.WithPrincipal(req.Context(), pr))

	rr := httptest.NewRecorder()
	handler.ListProfessionals(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var resp ListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Professionals == nil {
		t.Error("Expected empty array, got null")
	}
	if resp.Total != 0 {
		t.Errorf("Expected total 0, got %d", resp.Total)
	}
}
