// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigratePostgres_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // без ожиданий: goose получит ошибку на первом же запросе

	err = MigratePostgres(db)
	if err == nil {
		t.Fatal("expected error from MigratePostgres, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for name, fn := range map[string]func(*sql.DB) error{
		"postgres": MigratePostgres,
		"sqlite":   MigrateSQLite,
	} {
		t.Run(name, func(t *testing.T) {
			err := fn(db)
			if !errors.Is(err, ErrNilDB) {
				t.Errorf("expected ErrNilDB, got: %v", err)
			}
		})
	}
}

func TestMigrateSQLite_CreatesPreferences(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if err = MigrateSQLite(db); err != nil {
		t.Fatalf("MigrateSQLite: %v", err)
	}
	// second run is a no-op
	if err = MigrateSQLite(db); err != nil {
		t.Fatalf("MigrateSQLite (again): %v", err)
	}

	if _, err = db.Exec(`INSERT INTO preferences (key, value) VALUES ('cart_items', '[]')`); err != nil {
		t.Fatalf("insert into preferences: %v", err)
	}
}
