package http

import (
	"database/sql"
	"net/http"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
	"github.com/MenteSana-Clinic/intake-service/internal/messaging"
	"github.com/MenteSana-Clinic/intake-service/internal/referral"
	"github.com/MenteSana-Clinic/intake-service/internal/roster"
	"github.com/MenteSana-Clinic/intake-service/internal/telemetry"
	"github.com/MenteSana-Clinic/intake-service/internal/users"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application. metrics may
// be nil (e.g. in tests); the router then runs without request
// metrics.
func SetupRouter(db *sql.DB, verifier *auth.Verifier, ros *roster.Roster, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Initialize referral components
	referralRepo := referral.NewRepository(db)
	referralService := referral.NewService(referralRepo, publisher)
	referralHandler := referral.NewHandler(referralService)

	// Initialize user components
	userRepo := users.NewRepository(db)
	userService := users.NewService(userRepo, verifier, publisher)
	userHandler := users.NewHandler(userService)

	// Roster is read-only, loaded at startup
	rosterHandler := roster.NewHandler(ros)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("intake-service"))
	if metrics != nil {
		r.Use(MetricsMiddleware(metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"intake-service"}`))
	}).Methods("GET")

	// Public auth endpoints
	r.HandleFunc("/auth/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")

	// Everything below requires a valid token
	authed := auth.Middleware(verifier)
	if metrics != nil {
		authed = auth.MiddlewareWithMetrics(verifier, metrics)
	}

	r.Handle("/referrals",
		authed(http.HandlerFunc(referralHandler.CreateReferral)),
	).Methods("POST")

	r.Handle("/referrals",
		authed(http.HandlerFunc(referralHandler.ListReferrals)),
	).Methods("GET")

	r.Handle("/referrals/search",
		authed(http.HandlerFunc(referralHandler.SearchByNationalID)),
	).Methods("GET")

	r.Handle("/referrals/unscheduled",
		authed(http.HandlerFunc(referralHandler.ListUnscheduled)),
	).Methods("GET")

	r.Handle("/referrals/{national_id}/appointment",
		authed(http.HandlerFunc(referralHandler.ScheduleAppointment)),
	).Methods("PUT")

	r.Handle("/roster/professionals",
		authed(http.HandlerFunc(rosterHandler.ListProfessionals)),
	).Methods("GET")

	return r
}
