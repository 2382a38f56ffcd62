// Package harness runs move scenarios against the session engine and checks
// the outcome.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: trefoil_commutations
//	description: "Every adjacent commutation of the trefoil is interleaved"
//	grid: ../grids/trefoil.csv     # or inline rows:
//	# rows: ["x.o..", ".x.o.", "..x.o", "o..x.", ".o..x"]
//	session: s-trefoil              # optional fixed session token
//	moves:
//	  - move: commute row 0
//	    expect: INTERLEAVED_ROWS
//	  - move: translate up
//	    expect: ok
//	assertions:
//	  - type: size
//	    value: 5
//	  - type: crossings
//	    value: 3
//	  - type: rows
//	    rows: [".x.o.", "..x.o", "o..x.", ".o..x", "x.o.."]
//
// Grid paths are relative to the scenario file. Unknown YAML fields are
// rejected so that typos fail loudly.
//
// # Assertion Types
//
//   - size: final grid size equals value
//   - components: final link component count equals value
//   - crossings: final crossing count equals value
//   - rejected: number of rejected moves equals value
//   - valid: final diagram passes grid validation
//   - rows: final rows equal rows exactly
//
// # Deterministic Testing
//
// Every run uses a fixed session token, testutil.DeterministicClock and a
// fresh in-memory SQLite store as the session recorder. After the moves,
// the recorded session is replayed from the store and any divergence is
// reported as a failure, so each scenario also checks persistence and
// replay.
//
// RunWithGolden snapshots the step log plus the final segments and
// crossings as canonical JSON and compares it with goldie.
package harness
