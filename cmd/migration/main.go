package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/ykhknw/pocketnavi/pkg/database"
	"github.com/ykhknw/pocketnavi/pkg/database/migration"
	"github.com/ykhknw/pocketnavi/pkg/database/repository"
	"github.com/ykhknw/pocketnavi/pkg/logging"
	"github.com/ykhknw/pocketnavi/pkg/slugops"
)

func main() {
	// Parse the command line arguments
	resetFlag := flag.Bool("reset", false, "Reset the database")
	slugsFlag := flag.Bool("slugs", false, "Run slug backfill and dedup after migrating")
	flag.Parse()

	// Load the environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	db, err := database.NewGormDB(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL database: %v", err)
	}

	defer sqlDB.Close()
	log.Println("Connected to database")

	// Reset Flag
	if *resetFlag {
		log.Println("Resetting database...")

		db.Exec("SET session_replication_role = 'replica';")

		// Drop all tables
		result := db.Exec(`
			DO $$ DECLARE
			r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
					EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`)

		// Reset to normal state
		db.Exec("SET session_replication_role = 'origin';")

		if result.Error != nil {
			log.Fatalf("Failed to drop tables: %v", result.Error)
		}

		log.Println("Database reset successfully")
	}

	log.Println("Running migrations...")

	if err := migration.RunMigration(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Slug maintenance flag
	if *slugsFlag {
		log.Println("Running slug backfill and dedup...")

		workflow := slugops.NewWorkflow(
			repository.NewSlugRepository(db),
			logging.NewZapLogger("migration"),
		)
		if err := workflow.Run(); err != nil {
			log.Fatalf("Failed to run slug maintenance: %v", err)
		}

		log.Println("Slug maintenance completed successfully")
	}
}
