// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - OrganizerKeySalt: Secret for organizer key HMAC (required)

# CLI Flags

	-p                Server port
	-d                Database URL or SQLite path
	-t                Database type (sqlite or postgres)
	--organizer-salt  Organizer key salt

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	ORGANIZER_KEY_SALT → --organizer-salt

CLI flags take precedence over environment variables. main loads a local
.env file (via godotenv) before parsing, so either source works in dev.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres when set
  - ORGANIZER_KEY_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(conn, cfg)
*/
package cliparse
