package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			token_balance INTEGER NOT NULL DEFAULT 0 CHECK (token_balance >= 0),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL,
			token_amount INTEGER NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chapters (
			id VARCHAR(36) PRIMARY KEY,
			book_id VARCHAR(36) NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			chapter_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			id VARCHAR(36) PRIMARY KEY,
			chapter_id VARCHAR(36) NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			page_number INTEGER NOT NULL,
			text_content TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS token_usage_logs (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			chapter_id VARCHAR(36),
			tokens_used INTEGER NOT NULL,
			operation_type VARCHAR(50) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS image_prompts (
			id VARCHAR(36) PRIMARY KEY,
			chapter_id VARCHAR(36) NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			page_id VARCHAR(36) REFERENCES pages(id) ON DELETE SET NULL,
			selected_text TEXT NOT NULL,
			image_path VARCHAR(1000) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS book_summaries (
			id VARCHAR(36) PRIMARY KEY,
			book_id VARCHAR(36) UNIQUE NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chapter_summaries (
			id VARCHAR(36) PRIMARY KEY,
			chapter_id VARCHAR(36) UNIQUE NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chapter_audios (
			id VARCHAR(36) PRIMARY KEY,
			chapter_id VARCHAR(36) NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			voice_id VARCHAR(255) NOT NULL,
			audio_file_path VARCHAR(1000) NOT NULL,
			generated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS favorite_voices (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			voice_name VARCHAR(255) NOT NULL,
			voice_id1 VARCHAR(255) NOT NULL,
			voice_weight1 INTEGER NOT NULL,
			voice_id2 VARCHAR(255),
			voice_weight2 INTEGER,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, voice_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_transactions_user ON payment_transactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_token_usage_logs_user ON token_usage_logs(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_chapters_book ON chapters(book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_chapter ON pages(chapter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_image_prompts_chapter ON image_prompts(chapter_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
