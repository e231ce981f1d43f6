package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
	"github.com/MenteSana-Clinic/intake-service/internal/db"
	httpserver "github.com/MenteSana-Clinic/intake-service/internal/http"
	"github.com/MenteSana-Clinic/intake-service/internal/messaging"
	"github.com/MenteSana-Clinic/intake-service/internal/roster"
	"github.com/MenteSana-Clinic/intake-service/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Telemetry first so everything after is instrumented. Both
	// providers degrade gracefully when no collector is reachable.
	telemetryProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry init failed: %v", err)
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics init failed: %v", err)
		metrics = nil
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		log.Fatalf("migration: %v", err)
	}
	log.Println("✓ Database schema applied")

	authCfg := auth.LoadConfig()
	if authCfg.Secret == "" {
		log.Fatal("AUTH_SECRET is required")
	}
	verifier := auth.NewVerifier(authCfg)

	ros, err := roster.Load(env("ROSTER_PATH", "roster.yml"))
	if err != nil {
		log.Fatalf("roster: %v", err)
	}
	log.Printf("✓ Loaded roster with %d professionals", len(ros.Professionals()))

	// The service stays up without RabbitMQ; events are skipped.
	var publisher messaging.PublisherInterface
	if p, err := messaging.NewPublisher(); err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
	} else {
		publisher = p
		defer p.Close()
	}

	router := httpserver.SetupRouter(database, verifier, ros, publisher, metrics)

	srv := &http.Server{
		Addr:         ":" + env("PORT", "8080"),
		Handler:      httpserver.CORSMiddleware(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("intake-service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	if telemetryProvider != nil {
		if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
