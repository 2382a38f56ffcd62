// Package move implements the Cromwell moves over grid diagrams.
//
// The move set is a closed tagged variant: Translation, Commutation,
// Stabilization and Destabilization. Each variant carries its own
// parameters, its own applicability check and its own effect; Apply
// dispatches on the concrete type.
//
// TRANSACTIONS:
//
// Apply never edits the diagram in place while a move is being computed.
// The candidate layout is built on a grid.Scratch, re-validated by
// grid.Diagram.Commit, and only then adopted. On any error the diagram's
// cells are exactly what they were before the call.
//
// Moves hold no state between calls, and a diagram must not be passed to
// two concurrent Apply calls.
//
// NOTATION:
//
//	translate up|down|left|right
//	commute row|col <k>
//	stabilize nw|ne|sw|se <row> <col>
//	destabilize nw|ne|sw|se <row> <col>
//
// Parse reads this notation and every Move's String method writes it.
package move
