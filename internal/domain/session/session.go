package session

import "fmt"

// DefaultTitle is the placeholder title of an explicitly created session
// before its first entry arrives.
const DefaultTitle = "New Chat"

// titleLimit is the maximum title length before truncation.
const titleLimit = 30

// Entry is the capability a domain entry variant must provide: the text
// a session title is derived from.
type Entry interface {
	PrimaryText() string
}

// Session holds an ordered, chronological list of entries. Entries are
// never reordered; the title is set at most once automatically.
type Session[E Entry] struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
	Entries   []E    `json:"entries"`
}

// Keys is the per-domain key pair in the durable store.
type Keys struct {
	Sessions string
	Active   string
}

// KeysFor returns the fixed key pair for a domain namespace. The three
// chat surfaces each use their own pair so they never collide.
func KeysFor(namespace string) Keys {
	return Keys{
		Sessions: fmt.Sprintf("sync_%s_sessions", namespace),
		Active:   fmt.Sprintf("sync_active_%s_session", namespace),
	}
}

// DeriveTitle truncates seed to 30 characters, appending an ellipsis when
// longer. A seed of exactly 30 characters is kept verbatim.
func DeriveTitle(seed string) string {
	runes := []rune(seed)
	if len(runes) <= titleLimit {
		return seed
	}
	return string(runes[:titleLimit]) + "..."
}
