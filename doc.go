// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Planning Poker API server.

Planning Poker is a real-time estimation tool for agile teams: an organizer
loads a backlog, participants vote on each item with a fixed card deck
(1, 2, 3, 5, 8, 13 plus "?" and "☕"), and a pluggable resolution engine
decides when a round produces a result.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=poker.db ORGANIZER_KEY_SALT=secret go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..." -t postgres --organizer-salt secret

A local .env file is loaded automatically if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - ORGANIZER_KEY_SALT (--organizer-salt): Secret for organizer key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, game control, state, chat)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - session: Session lifecycle service (state machine, import/export, chat)
  - game: Resolution engine, deck math, vote visibility
  - store: Persistence interface and SQL implementation
  - models: Request/response and domain types
  - auth: Session codes and organizer keys
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
