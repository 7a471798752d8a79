package account

import "github.com/google/uuid"

// Defaultable is an entry of a collection with at most one intended default.
type Defaultable interface {
	Identifier() uuid.UUID
	Default() bool
}

// ResolveDefault tolerates the window where a default flip is half applied:
// with several flagged entries the first one wins, with none the first entry is
// used. An empty collection yields false.
func ResolveDefault[T Defaultable](entries []T) (T, bool) {
	var zero T
	if len(entries) == 0 {
		return zero, false
	}
	for _, e := range entries {
		if e.Default() {
			return e, true
		}
	}
	return entries[0], true
}

func Find[T Defaultable](entries []T, id uuid.UUID) (T, bool) {
	var zero T
	for _, e := range entries {
		if e.Identifier() == id {
			return e, true
		}
	}
	return zero, false
}

// CountDefaults is used to detect an inconsistent collection for logging.
func CountDefaults[T Defaultable](entries []T) int {
	n := 0
	for _, e := range entries {
		if e.Default() {
			n++
		}
	}
	return n
}
