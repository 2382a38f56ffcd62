// Package grid implements grid diagrams: square n-by-n grids of X, O and blank
// cells that encode a knot or link.
//
// A Diagram is only ever obtained through New (or FromRows), which is the
// single validation gate. Every row and every column of a valid diagram
// holds exactly one X and exactly one O.
//
// # Derived geometry
//
// The knot path is never stored. Segments and crossings are recomputed from
// live cell state on every call:
//   - one vertical segment per column, from its X down/up to its O
//   - one horizontal segment per row, from its O across to its X
//   - wherever a vertical segment strictly crosses a horizontal one, the
//     vertical strand passes over
//
// # Mutation
//
// Diagrams are mutated only through Commit, which validates a Scratch
// layout before adopting it. A rejected Scratch leaves the diagram
// untouched. The move package builds candidate layouts on a Scratch.
//
// Nothing in this package logs, performs I/O or retains references to
// caller-provided slices.
package grid
