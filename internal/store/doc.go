// Package store provides persistent storage for linkstash using SQLite.
//
// # Data Models
//
//   - CachedLink: one user's record of one URL, with fetched page content,
//     subresources, and the assigned category/color. Keyed by (user_id, url);
//     a later save replaces the prior record.
//   - Category: a user's custom category, keyed by (user_id, name).
//
// # Invariants
//
// Refreshing a link's content preserves its category/color assignment.
// Assigning a category to a never-fetched URL creates a record with empty
// content. ListLinks returns ascending timestamp order for stable export.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is created automatically on startup. Use ":memory:" for tests.
//
// # Error Handling
//
//   - ErrNotFound: requested entity does not exist
//
// All methods accept context.Context for cancellation support.
package store
