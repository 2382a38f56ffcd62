// Package ir holds the float-free records that leave the process: diagram
// snapshots, editing sessions and their steps, plus the canonical JSON and
// content-addressed identities computed over them.
//
// ir imports nothing internal. Callers convert a grid.Diagram into its
// size and row strings before asking for an ID.
//
// Key constraints:
//   - No float types in records or canonical values
//   - Logical sequence numbers only, never wall-clock time
//   - JSON tags use snake_case
package ir
