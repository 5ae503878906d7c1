package database

import (
	"testing"
)

func TestDialectBasics(t *testing.T) {
	tests := []struct {
		name       string
		dialect    Dialect
		driverName string
		subdir     string
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", "sqlite"},
		{"postgres", NewPostgresDialect(), "postgres", "postgres"},
		{"mysql", NewMySQLDialect(), "mysql", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %v, want %v", got, tt.driverName)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.subdir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	query := "SELECT id FROM weekly_plans WHERE child_id = ? AND week_starting = ?"

	t.Run("postgres rewrites to numbered placeholders", func(t *testing.T) {
		got := NewPostgresDialect().RewriteQuery(query)
		want := "SELECT id FROM weekly_plans WHERE child_id = $1 AND week_starting = $2"
		if got != want {
			t.Errorf("RewriteQuery() = %q, want %q", got, want)
		}
	})

	t.Run("sqlite and mysql pass through", func(t *testing.T) {
		if got := NewSQLiteDialect().RewriteQuery(query); got != query {
			t.Errorf("sqlite RewriteQuery() = %q, want unchanged", got)
		}
		if got := NewMySQLDialect().RewriteQuery(query); got != query {
			t.Errorf("mysql RewriteQuery() = %q, want unchanged", got)
		}
	})
}

func TestSplitStatements(t *testing.T) {
	content := `
		CREATE TABLE a (id TEXT PRIMARY KEY);

		CREATE TABLE b (id TEXT PRIMARY KEY);
	`
	stmts := splitStatements(content)
	if len(stmts) != 2 {
		t.Fatalf("splitStatements() returned %d statements, want 2", len(stmts))
	}
}
