// Package engine implements the conversation controller: a per-user finite
// state machine that turns ambiguous front-end events into committed
// (user, url, category, color) records.
//
// # States
//
//	Idle -> AwaitingCategoryChoice -> AwaitingNewCategoryName -> AwaitingColorChoice -> Idle
//
// A submitted URL always starts a fresh flow, abandoning any in-flight
// category creation. Text is interpreted as a category name if and only if
// the session is awaiting one; otherwise it is treated as a URL submission.
//
// # Concurrency
//
// All handling for one user is serialized behind a per-user lock, held
// across the content fetch: an event arriving while a fetch is outstanding
// queues behind it. Different users proceed in parallel.
//
// # Failure semantics
//
// Validation problems (no URL, empty name, stale button) return ErrorNotice
// directives and never an error. Fetch failures are absorbed into the cached
// record as an error marker; categorization proceeds regardless. Only
// persistence failures surface as errors, and the requested mutation is not
// applied.
package engine
