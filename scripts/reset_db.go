package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"fiado-backend/internal/db"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Ledger Store for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL LEDGER DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all customers")
	fmt.Println("  - Delete all purchases")
	fmt.Println("  - Delete all payments")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	path := getEnv("FIADO_DB_PATH", "fiado.db")

	store, err := db.Open(path)
	if err != nil {
		log.Fatalf("Unable to open store: %v\n", err)
	}
	defer store.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting store...")

	tx, err := store.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback()

	// Children first so the foreign keys stay satisfied
	tables := []string{
		"payments",
		"purchases",
		"customers",
	}

	for _, table := range tables {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			log.Fatalf("Failed to clear %s: %v\n", table, err)
		}
		fmt.Printf("  ✓ Cleared %s\n", table)
	}

	// SQLite keeps AUTOINCREMENT counters here
	if _, err := tx.Exec("DELETE FROM sqlite_sequence"); err != nil {
		log.Printf("Warning: Failed to reset sequences: %v\n", err)
	} else {
		fmt.Println("  ✓ Reset ID sequences")
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit: %v\n", err)
	}

	fmt.Println()
	fmt.Println("✅ Store reset complete!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
