// Package store provides SQLite-backed storage for editing sessions.
//
// Three tables make up an append-only log:
//   - diagrams: content-addressed grid snapshots (id = ir.DiagramID)
//   - sessions: one row per editing session and its initial diagram
//   - steps: every attempted move, accepted or rejected, per session
//
// # Patterns
//
// Idempotent writes:
//   - INSERT ... ON CONFLICT DO NOTHING everywhere; re-recording a step or
//     a known diagram is a no-op
//
// Logical time:
//   - steps are ordered by seq, never by timestamps
//
// Untrusted reads:
//   - stored cells are re-validated through grid.New and re-hashed on
//     every read; a row that fails either is reported, never returned
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
