// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists session aggregates behind the Store interface.

The session service never touches SQL directly; it is handed a Store at
construction. The one provided implementation, SQL, runs on either
PostgreSQL (github.com/lib/pq) or SQLite (modernc.org/sqlite) — the DDL in
package db and every statement here are written to work on both.

# Partial updates

Transitions patch only the fields they own:

	reveal := true
	err := st.UpdateSession(ctx, id, store.SessionPatch{Reveal: &reveal})

# Guarded updates

State transitions that may race (the poll-triggered pause, duplicate
next-item submissions) go through UpdateSessionGuarded, a compare-and-set
on status and/or current_index:

	applied, err := st.UpdateSessionGuarded(ctx, id, patch, store.Guard{
		StatusNot: []string{models.StatusPaused, models.StatusFinished},
	})

applied is false when another writer got there first; callers treat that as
"already done", not as an error.
*/
package store
