// Package seqid allocates human-readable per-hospital identifiers.
// Identifiers are a fixed prefix followed by a numeric suffix; the next one
// is the maximum existing suffix plus one, starting from a floor when none
// exist. The caller stores the result under a (hospital, identifier) unique
// constraint so a concurrent allocation race loses with a conflict instead
// of overwriting.
package seqid

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the identifier format for an entity type.
type Kind struct {
	Prefix string
	Floor  int
}

var (
	Ticket        = Kind{Prefix: "TIC", Floor: 1000}
	Patient       = Kind{Prefix: "P-", Floor: 1000}
	PurchaseOrder = Kind{Prefix: "PO-", Floor: 1000}
)

// Format renders an identifier for the kind with the given numeric suffix.
func (k Kind) Format(n int) string {
	return k.Prefix + strconv.Itoa(n)
}

// Suffix extracts the numeric suffix from an identifier of this kind.
// Returns the floor when the identifier is empty or malformed, so a corrupt
// row degrades to restarting the sequence rather than failing creation.
func (k Kind) Suffix(id string) int {
	rest := strings.TrimPrefix(id, k.Prefix)
	if rest == id || rest == "" {
		return k.Floor
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < k.Floor {
		return k.Floor
	}
	return n
}

// Next produces the identifier following last. An empty last starts the
// sequence at floor+1.
func (k Kind) Next(last string) string {
	return k.Format(k.Suffix(last) + 1)
}

// Validate reports whether id is well formed for the kind.
func (k Kind) Validate(id string) error {
	rest := strings.TrimPrefix(id, k.Prefix)
	if rest == id || rest == "" {
		return fmt.Errorf("identifier %q does not match prefix %q", id, k.Prefix)
	}
	if _, err := strconv.Atoi(rest); err != nil {
		return fmt.Errorf("identifier %q has non-numeric suffix", id)
	}
	return nil
}
