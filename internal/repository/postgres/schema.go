package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/logger"

	"github.com/lib/pq"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		code VARCHAR(10) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(255) NOT NULL,
		stock INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		code VARCHAR(10) PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS borrowings (
		id VARCHAR(36) PRIMARY KEY,
		member_code VARCHAR(10) NOT NULL REFERENCES members(code),
		book_code VARCHAR(10) NOT NULL REFERENCES books(code),
		borrow_date DATE NOT NULL,
		return_date DATE,
		due_date DATE NOT NULL,
		penalty_end_date DATE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_borrowings_open_member ON borrowings (member_code) WHERE return_date IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_borrowings_open_book ON borrowings (book_code) WHERE return_date IS NULL`,
}

// SeedBooks and SeedMembers are the catalogue loaded by Seed.
var SeedBooks = []domain.Book{
	{Code: "JK-45", Title: "Harry Potter", Author: "J.K Rowling", Stock: 1},
	{Code: "SHR-1", Title: "A Study in Scarlet", Author: "Arthur Conan Doyle", Stock: 1},
	{Code: "TW-11", Title: "Twilight", Author: "Stephenie Meyer", Stock: 1},
	{Code: "HOB-83", Title: "The Hobbit, or There and Back Again", Author: "J.R.R. Tolkien", Stock: 1},
	{Code: "NRN-7", Title: "The Lion, the Witch and the Wardrobe", Author: "C.S. Lewis", Stock: 1},
}

var SeedMembers = []domain.Member{
	{Code: "M001", Name: "Angga"},
	{Code: "M002", Name: "Ferry"},
	{Code: "M003", Name: "Putri"},
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	logger.Info("Schema applied", "statements", len(schemaStatements))
	return nil
}

// Seed inserts the catalogue; rows that already exist are left untouched.
func Seed(ctx context.Context, db DBTX) error {
	for _, b := range SeedBooks {
		_, err := db.ExecContext(ctx,
			`INSERT INTO books (code, title, author, stock) VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO NOTHING`,
			b.Code, b.Title, b.Author, b.Stock)
		if err != nil {
			return fmt.Errorf("failed to seed book %s: %w", b.Code, err)
		}
	}
	for _, m := range SeedMembers {
		_, err := db.ExecContext(ctx,
			`INSERT INTO members (code, name) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
			m.Code, m.Name)
		if err != nil {
			return fmt.Errorf("failed to seed member %s: %w", m.Code, err)
		}
	}
	logger.Info("Seed data inserted", "books", len(SeedBooks), "members", len(SeedMembers))
	return nil
}

// CreateDatabase and DropDatabase must run on a connection to a maintenance
// database such as "postgres", not on the target itself.
func CreateDatabase(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name))
	return err
}

func DropDatabase(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, "DROP DATABASE IF EXISTS "+pq.QuoteIdentifier(name))
	return err
}
