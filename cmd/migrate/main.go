package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/db"

	"github.com/jmoiron/sqlx"
)

const (
	migrationsGlob = "migrations/*.sql"
	downMarker     = "-- +migrate Down"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	if err := run(database); err != nil {
		log.Fatal(err)
	}
}

func run(database *sqlx.DB) error {
	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (filename text primary key, applied_at timestamptz default now())`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations: %w", err)
	}
	files, err := filepath.Glob(migrationsGlob)
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		name := filepath.Base(file)
		applied, err := isApplied(database, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := applyMigration(database, file); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		if _, err := database.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("failed to record %s: %w", name, err)
		}
		log.Printf("applied %s", name)
	}
	return nil
}

func isApplied(database *sqlx.DB, name string) (bool, error) {
	var exists bool
	if err := database.Get(&exists, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, name); err != nil {
		return false, fmt.Errorf("failed to read migration state: %w", err)
	}
	return exists, nil
}

// applyMigration runs every statement in the file's Up section. The Down
// section, when present, is kept in the file for manual rollback only.
func applyMigration(database *sqlx.DB, path string) error {
	content, err := readUpSection(path)
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(content) {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func readUpSection(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	up, _, _ := strings.Cut(string(content), downMarker)
	return up, nil
}

// splitStatements splits on statement-terminating semicolons, dropping
// comment lines. Good enough for the schema files in migrations/, which
// avoid semicolons inside strings or function bodies.
func splitStatements(sqlText string) []string {
	var statements []string
	var current strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(sqlText))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		current.WriteString(line)
		current.WriteRune('\n')
		if strings.Contains(line, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	trimmed := statements[:0]
	for _, stmt := range statements {
		if strings.TrimSpace(stmt) != "" {
			trimmed = append(trimmed, stmt)
		}
	}
	return trimmed
}
