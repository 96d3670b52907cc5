package session

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrInvalidEntry is returned when an entry payload or patch fails to
// decode.
var ErrInvalidEntry = errors.New("invalid entry payload")

// Service is the type-erased store surface the HTTP layer binds per
// domain. Snapshots are returned as `any` so handlers can hand them to
// the JSON encoder without knowing the entry variant.
type Service interface {
	Load()
	List() (sessions any, activeID string)
	Create() (any, error)
	Get(sessionID string) (any, bool)
	SetActive(sessionID string) error
	Delete(sessionID string) error
	Clear() error
	// Append decodes a domain entry, ensures an active session (titled
	// from the entry when one must be created), and appends. Returns the
	// session id the entry landed in.
	Append(raw []byte) (string, error)
	// AppendTo appends a decoded entry to a named session.
	AppendTo(sessionID string, raw []byte) error
	// Update merges raw into the entry at index.
	Update(sessionID string, index int, raw []byte) error
}

// Adapter lifts a typed Store into the Service surface. Normalize, when
// set, stamps decoder output (ids, timestamps) before it is stored.
type Adapter[E Entry] struct {
	Store     *Store[E]
	Normalize func(E) E
}

// NewAdapter wraps store with an optional normalize hook.
func NewAdapter[E Entry](store *Store[E], normalize func(E) E) *Adapter[E] {
	return &Adapter[E]{Store: store, Normalize: normalize}
}

func (a *Adapter[E]) Load() { a.Store.Load() }

func (a *Adapter[E]) List() (any, string) {
	return a.Store.List(), a.Store.ActiveID()
}

func (a *Adapter[E]) Create() (any, error) {
	return a.Store.CreateSession()
}

func (a *Adapter[E]) Get(sessionID string) (any, bool) {
	return a.Store.Get(sessionID)
}

func (a *Adapter[E]) SetActive(sessionID string) error {
	return a.Store.SetActive(sessionID)
}

func (a *Adapter[E]) Delete(sessionID string) error {
	return a.Store.DeleteSession(sessionID)
}

func (a *Adapter[E]) Clear() error {
	return a.Store.ClearAll()
}

func (a *Adapter[E]) Append(raw []byte) (string, error) {
	entry, err := a.decode(raw)
	if err != nil {
		return "", err
	}

	sessionID, err := a.Store.EnsureActiveSession(entry.PrimaryText())
	if err != nil {
		return "", err
	}
	return sessionID, a.Store.AppendEntry(sessionID, entry)
}

func (a *Adapter[E]) AppendTo(sessionID string, raw []byte) error {
	entry, err := a.decode(raw)
	if err != nil {
		return err
	}
	return a.Store.AppendEntry(sessionID, entry)
}

func (a *Adapter[E]) Update(sessionID string, index int, raw []byte) error {
	return a.Store.UpdateEntry(sessionID, index, func(current E) (E, error) {
		merged := current
		if err := sonic.Unmarshal(raw, &merged); err != nil {
			return current, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
		return merged, nil
	})
}

func (a *Adapter[E]) decode(raw []byte) (E, error) {
	var entry E
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return entry, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if a.Normalize != nil {
		entry = a.Normalize(entry)
	}
	return entry, nil
}
