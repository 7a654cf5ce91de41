// Package telegram is the messaging front-end: it long-polls the Telegram
// Bot API, decodes each update into the engine's tagged event union exactly
// once at the boundary, and renders the directives the engine returns.
//
// Callback data stays under Telegram's 64-byte limit by never embedding the
// URL; URL-carrying actions recover it from the message the keyboard is
// attached to. Redelivered updates are dropped with a TTL dedupe cache.
package telegram
