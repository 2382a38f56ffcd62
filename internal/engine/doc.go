// Package engine runs editing sessions over a grid diagram.
//
// A Session owns one diagram and applies Cromwell moves to it one at a
// time. Every attempt, accepted or rejected, becomes an ir.Step stamped
// with a logical sequence number and the content-addressed ID of the
// diagram after the attempt. Steps are kept in memory and forwarded to an
// optional Recorder (the SQLite store in production).
//
// Patterns:
//
// Logical clock:
// Steps are ordered by seq from a SeqSource, never by wall-clock time.
//
// Transactional moves:
// A rejected move leaves the diagram untouched; the step still records
// the attempt and its error code.
//
// Limits:
// A session stops accepting moves after MaxSteps attempts, and refuses
// stabilizations that would grow the grid past MaxSize.
package engine
