package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix leaves
// room for a future encoding change.
const (
	DomainDiagram = "knots/diagram/v1"
)

// hashWithDomain returns hex(SHA256(domain || 0x00 || data)).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DiagramID computes the content-addressed ID of a grid layout. Two
// diagrams have the same ID exactly when their cells are identical.
func DiagramID(size int, rows []string) (string, error) {
	canonical, err := MarshalCanonical(Diagram{Size: size, Rows: rows}.Object())
	if err != nil {
		return "", fmt.Errorf("DiagramID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDiagram, canonical), nil
}

// MustDiagramID is like DiagramID but panics on error.
func MustDiagramID(size int, rows []string) string {
	id, err := DiagramID(size, rows)
	if err != nil {
		panic(err)
	}
	return id
}

// NewDiagram builds a Diagram record with its ID filled in.
func NewDiagram(size int, rows []string) (Diagram, error) {
	id, err := DiagramID(size, rows)
	if err != nil {
		return Diagram{}, err
	}
	return Diagram{ID: id, Size: size, Rows: append([]string(nil), rows...)}, nil
}
