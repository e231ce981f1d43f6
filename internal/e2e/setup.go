//go:build integration

package e2e

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
	httpserver "github.com/MenteSana-Clinic/intake-service/internal/http"
	"github.com/MenteSana-Clinic/intake-service/internal/roster"
	"github.com/MenteSana-Clinic/intake-service/internal/testutil"
)

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
}

// SetupE2ETest creates a complete test environment for E2E testing:
// a real PostgreSQL database with the schema applied, a real HTTP
// server with all routes, a locally-signed token verifier and an
// in-memory event publisher.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mockPublisher := testutil.NewMockPublisher()

	verifier := auth.NewVerifier(auth.Config{
		Secret:   "e2e-test-secret",
		Issuer:   auth.DefaultIssuer,
		TokenTTL: time.Hour,
	})

	ros, err := roster.Load("../../roster.yml")
	if err != nil {
		t.Fatalf("Failed to load roster: %v", err)
	}

	router := httpserver.SetupRouter(db, verifier, ros, mockPublisher, nil)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		testutil.CleanupTestDB(t, db)
		db.Close()
	})

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
	}
}

// IssueToken signs an access token directly, bypassing the login
// endpoint, for tests that are not about authentication itself.
func (ts *TestServer) IssueToken(t *testing.T, username string) string {
	t.Helper()

	token, err := ts.Verifier.IssueToken(username)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}
