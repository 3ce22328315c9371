package id

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// ShortLen is the number of characters shown when displaying an ID.
const ShortLen = 8

// Generator produces identifiers for budgets and expenses.
type Generator interface {
	NewID() string
}

// Random generates random (version 4) UUIDs.
type Random struct{}

// NewID returns a new random UUID string.
func (Random) NewID() string {
	return uuid.NewString()
}

// Sequence generates monotonically increasing IDs like "b-1", "b-2".
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence returns a Sequence whose IDs start with prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next ID in the sequence.
func (s *Sequence) NewID() string {
	return s.prefix + "-" + strconv.FormatInt(s.n.Add(1), 10)
}

// Short truncates an ID for display.
func Short(id string) string {
	if len(id) <= ShortLen {
		return id
	}
	return id[:ShortLen]
}

// Resolve maps a user-supplied reference to one of ids. An exact match wins;
// otherwise ref must be a prefix of exactly one ID.
func Resolve(ref string, ids []string) (string, error) {
	if ref == "" {
		return "", errors.New("empty id")
	}

	var matches []string
	for _, candidate := range ids {
		if candidate == ref {
			return candidate, nil
		}
		if strings.HasPrefix(candidate, ref) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no id matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", ref, len(matches))
	}
}
