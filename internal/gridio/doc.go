// Package gridio reads and writes grid diagrams on disk.
//
// Two formats are understood:
//
//   - .csv: no header, one grid row per line, cells "x", "o" or blank
//     (case-insensitive, a single space counts as blank)
//   - .cue: a struct with a rows field holding a list of lists of the
//     same cell strings, and an optional name
//
// Files are decoded into marker tables and handed to grid.New, so every
// loaded diagram has passed the full grid validation.
package gridio
