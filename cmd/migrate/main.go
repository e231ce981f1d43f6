// Command migrate applies the database schema and exits. The API
// server also applies the schema at startup; this binary exists for
// provisioning a database ahead of deployment.
package main

import (
	"context"
	"log"

	"github.com/MenteSana-Clinic/intake-service/internal/db"
)

func main() {
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(context.Background(), database); err != nil {
		log.Fatalf("migration: %v", err)
	}

	log.Println("✓ Database schema applied")
}
