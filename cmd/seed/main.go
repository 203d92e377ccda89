package main

import (
	"fmt"
	"log"
	"os"

	"github.com/brightbuy/brightbuy-backend/config"
	"github.com/brightbuy/brightbuy-backend/internal/db"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <catalog_xlsx_path> [-y]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && os.Args[2] == "-y"

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, skipped, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Variants to import: %d (skipped rows: %d)\n", len(rows), skipped)

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	stats, err := importCatalog(db.GetDB(), rows)
	if err != nil {
		log.Fatal("Failed to import catalog:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Products created: %d\n", stats.Products)
	fmt.Printf("  Variants created: %d\n", stats.VariantsCreated)
	fmt.Printf("  Variants updated: %d\n", stats.VariantsUpdated)

	if email := os.Getenv("SEED_ADMIN_EMAIL"); email != "" {
		admin, created, err := ensureAdmin(db.GetDB(), email, "Administrator")
		if err != nil {
			log.Fatal("Failed to create admin user:", err)
		}
		if created {
			fmt.Printf("Admin user created: %s (id %d)\n", admin.Email, admin.ID)
		}
	}
}
