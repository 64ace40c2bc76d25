// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL runs unchanged on PostgreSQL and SQLite.

# Tables

The schema includes:

  - session: Session aggregate (status, backlog, timer, history)
  - participant: One seat per display name per session
  - chat_message: Append-only timestamped chat log

# Relationships

	session 1──* participant
	session 1──* chat_message

Foreign keys are declared with ON DELETE CASCADE; the store still deletes
children explicitly so SQLite connections without foreign_keys enabled
behave identically.

# Indexes

Performance indexes on:

  - session.status
  - participant.session_id (plus unique session_id, name)
  - chat_message.(session_id, ts)
*/
package db
