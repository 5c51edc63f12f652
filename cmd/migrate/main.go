package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS votes CASCADE`,
		`DROP TABLE IF EXISTS polls CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Create polls table. owner_id holds the platform user id of the
		// creator.
		`CREATE TABLE IF NOT EXISTS polls (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id VARCHAR(255) NOT NULL,
			question VARCHAR(500) NOT NULL,
			options TEXT[] NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create votes table. voter_id is NULL for anonymous votes.
		`CREATE TABLE IF NOT EXISTS votes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			voter_id VARCHAR(255),
			option_index INTEGER NOT NULL CHECK (option_index >= 0),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_polls_owner_id ON polls(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_polls_created_at ON polls(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_poll_option ON votes(poll_id, option_index)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		INSERT INTO polls (owner_id, question, options) VALUES
		('seed-user-1', 'Which feature should we build next?', ARRAY['Dark mode', 'CSV export', 'Mobile app', 'Webhooks']),
		('seed-user-1', 'What is your preferred deploy cadence?', ARRAY['Daily', 'Weekly', 'On demand']),
		('seed-user-2', 'Where should the next team offsite be?', ARRAY['Chiang Mai', 'Tokyo', 'Lisbon'])
		ON CONFLICT DO NOTHING
	`

	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed polls: %w", err)
	}

	fmt.Println("  Seeded 3 polls")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
