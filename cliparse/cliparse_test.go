// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "poker.db")
	os.Setenv("ORGANIZER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-organizer-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "x.db", "-t", "mysql", "-organizer-salt", "s1"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestDriverName(t *testing.T) {
	if got := (Config{DatabaseType: "postgres"}).DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %q, want postgres", got)
	}
	if got := (Config{DatabaseType: "sqlite"}).DriverName(); got != "sqlite" {
		t.Errorf("DriverName() = %q, want sqlite", got)
	}
}
