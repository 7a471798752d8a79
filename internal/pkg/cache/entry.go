package cache

import "time"

type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
	TTL       time.Duration
}

func (e Entry[T]) IsFresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < e.TTL
}

// Key addresses one cached resource of one owner, e.g. {Kind: "addresses", Owner: userID}.
type Key struct {
	Kind  string
	Owner string
}

func (k Key) String() string {
	return k.Kind + ":" + k.Owner
}

// KindPrefix matches every key of a resource kind.
func KindPrefix(kind string) string {
	return kind + ":"
}
