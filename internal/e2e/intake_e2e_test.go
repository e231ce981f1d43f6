//go:build integration

package e2e

import (
	"net/http"
	"testing"

	"github.com/MenteSana-Clinic/intake-service/internal/referral"
	"github.com/MenteSana-Clinic/intake-service/internal/roster"
	"github.com/MenteSana-Clinic/intake-service/internal/testutil"
	"github.com/MenteSana-Clinic/intake-service/internal/users"
)

// TestIntakeLifecycle_E2E walks the whole flow: register an operator,
// log in, submit a referral, find it, schedule its appointment and
// watch it leave the waiting list.
func TestIntakeLifecycle_E2E(t *testing.T) {
	ts := SetupE2ETest(t)

	anon := testutil.NewHTTPTestClient(ts.Server.URL, "")

	// Register and log in
	resp := anon.POST(t, "/auth/register", users.RegisterRequest{
		Username: "reception1",
		Password: "s3cret",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = anon.POST(t, "/auth/login", users.LoginRequest{
		Username: "reception1",
		Password: "s3cret",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var login users.LoginResponse
	testutil.DecodeJSON(t, resp, &login)
	if login.Token == "" {
		t.Fatal("Expected a token from login")
	}

	client := testutil.NewHTTPTestClient(ts.Server.URL, login.Token)

	// Submit the referral
	resp = client.POST(t, "/referrals", referral.CreateReferralRequest{
		NationalID:   "30111222",
		LastName:     "Gomez",
		FirstName:    "Ana",
		Gender:       "F",
		BirthDate:    "1990-04-12",
		CurrentAge:   35,
		City:         "Rosario",
		Phone:        "341-5550000",
		Email:        "ana.gomez@example.com",
		ReferralDate: "2025-01-02",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created referral.ReferralSuccessResponse
	testutil.DecodeJSON(t, resp, &created)
	if created.Referral == nil || created.Referral.ID == 0 {
		t.Fatal("Expected created referral with an ID")
	}

	ts.MockPublisher.AssertEventPublished(t, "referral.created")

	// The patient is findable and waiting
	resp = client.GET(t, "/referrals/search?national_id=30111222")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var found referral.ReferralSuccessResponse
	testutil.DecodeJSON(t, resp, &found)
	if found.Referral.LastName != "Gomez" {
		t.Errorf("Expected last name 'Gomez', got '%s'", found.Referral.LastName)
	}

	resp = client.GET(t, "/referrals/unscheduled")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var waiting referral.ReferralListResponse
	testutil.DecodeJSON(t, resp, &waiting)
	if len(waiting.Referrals) != 1 {
		t.Fatalf("Expected 1 unscheduled referral, got %d", len(waiting.Referrals))
	}

	// Schedule the appointment
	resp = client.PUT(t, "/referrals/30111222/appointment", referral.ScheduleAppointmentRequest{
		Professional:    "Dr. Lopez",
		Specialty:       "Psicología",
		VisitType:       "Evaluación Inicial",
		AppointmentDate: "2025-01-10",
		AppointmentTime: "10:00:00",
		Confirmed:       true,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var scheduled referral.ScheduleResponse
	testutil.DecodeJSON(t, resp, &scheduled)
	if scheduled.RowsAffected != 1 {
		t.Errorf("Expected 1 row affected, got %d", scheduled.RowsAffected)
	}

	ts.MockPublisher.AssertEventPublished(t, "appointment.scheduled")

	// The waiting list is now empty
	resp = client.GET(t, "/referrals/unscheduled")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var after referral.ReferralListResponse
	testutil.DecodeJSON(t, resp, &after)
	if len(after.Referrals) != 0 {
		t.Errorf("Expected empty waiting list, got %d referrals", len(after.Referrals))
	}

	// And the appointment is visible on the record
	resp = client.GET(t, "/referrals/search?national_id=30111222")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var final referral.ReferralSuccessResponse
	testutil.DecodeJSON(t, resp, &final)
	if final.Referral.AssignedProfessional == nil || *final.Referral.AssignedProfessional != "Dr. Lopez" {
		t.Error("Expected assigned professional 'Dr. Lopez'")
	}
	if final.Referral.AppointmentConfirmed == nil || !*final.Referral.AppointmentConfirmed {
		t.Error("Expected confirmed appointment")
	}
}

// TestAuthGuards_E2E tests that protected routes reject anonymous and
// garbage-token requests
func TestAuthGuards_E2E(t *testing.T) {
	ts := SetupE2ETest(t)

	anon := testutil.NewHTTPTestClient(ts.Server.URL, "")
	resp := anon.GET(t, "/referrals")
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	bad := testutil.NewHTTPTestClient(ts.Server.URL, "not.a.token")
	resp = bad.GET(t, "/referrals")
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	// Health stays public
	resp = anon.GET(t, "/health")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
}

// TestDuplicateUsername_E2E tests the unique-username constraint end to end
func TestDuplicateUsername_E2E(t *testing.T) {
	ts := SetupE2ETest(t)

	anon := testutil.NewHTTPTestClient(ts.Server.URL, "")

	resp := anon.POST(t, "/auth/register", users.RegisterRequest{
		Username: "reception1",
		Password: "s3cret",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = anon.POST(t, "/auth/register", users.RegisterRequest{
		Username: "reception1",
		Password: "other",
	})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	// Wrong password stays out
	resp = anon.POST(t, "/auth/login", users.LoginRequest{
		Username: "reception1",
		Password: "wrong",
	})
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

// TestRosterListing_E2E tests the professional roster endpoint
func TestRosterListing_E2E(t *testing.T) {
	ts := SetupE2ETest(t)

	client := testutil.NewHTTPTestClient(ts.Server.URL, ts.IssueToken(t, "reception1"))

	resp := client.GET(t, "/roster/professionals")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var listing roster.ListResponse
	testutil.DecodeJSON(t, resp, &listing)
	if listing.Total == 0 {
		t.Fatal("Expected professionals in the roster")
	}

	found := false
	for _, p := range listing.Professionals {
		if p.Name == "Dr. Lopez" && p.Specialty == "Psicología" {
			found = true
		}
	}
	if !found {
		t.Error("Expected Dr. Lopez (Psicología) in the roster")
	}
}

// TestScheduleUnknownPatient_E2E tests the 404 path for scheduling
func TestScheduleUnknownPatient_E2E(t *testing.T) {
	ts := SetupE2ETest(t)

	client := testutil.NewHTTPTestClient(ts.Server.URL, ts.IssueToken(t, "reception1"))

	resp := client.PUT(t, "/referrals/99999999/appointment", referral.ScheduleAppointmentRequest{
		Professional: "Dr. Lopez",
		Confirmed:    true,
	})
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)

	ts.MockPublisher.AssertEventNotPublished(t, "appointment.scheduled")
}
