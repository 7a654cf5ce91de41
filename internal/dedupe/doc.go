// Package dedupe provides a TTL cache used by the messaging front-end to
// drop redelivered updates, so each user event reaches the engine once.
package dedupe
