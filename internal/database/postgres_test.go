package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"010_add_indexes.sql",
		"001_initial_schema.sql",
		"002_add_chapters.sql",
		"notes.txt",
		"README.md",
		"000_bad_version.sql",
		"no-underscore.sql",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	migrations, err := listMigrations(dir)
	if err != nil {
		t.Fatalf("listMigrations failed: %v", err)
	}

	want := []migration{
		{version: 1, name: "001_initial_schema.sql"},
		{version: 2, name: "002_add_chapters.sql"},
		{version: 10, name: "010_add_indexes.sql"},
	}
	if len(migrations) != len(want) {
		t.Fatalf("expected %d migrations, got %d: %v", len(want), len(migrations), migrations)
	}
	for i, m := range migrations {
		if m != want[i] {
			t.Errorf("migration %d: expected %+v, got %+v", i, want[i], m)
		}
	}
}

func TestListMigrationsMissingDir(t *testing.T) {
	if _, err := listMigrations(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("expected error for missing directory")
	}
}
