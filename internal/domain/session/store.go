package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/infrastructure/logging"
	"github.com/sync-cloud/backend/internal/shared/id"
	"github.com/sync-cloud/backend/internal/storage"
)

// ErrSessionNotFound is returned when a session id matches nothing.
var ErrSessionNotFound = errors.New("session not found")

// ErrEntryOutOfRange is returned by UpdateEntry for a bad index.
var ErrEntryOutOfRange = errors.New("entry index out of range")

// Store maintains the ordered session list and the active-session pointer
// for one domain, keeping both synchronized with the key-value store.
// Mutations are serialized behind a single mutex.
type Store[E Entry] struct {
	mu       sync.Mutex
	kv       storage.KV
	keys     Keys
	logger   *logging.Logger
	sessions []*Session[E] // most-recent-first
	activeID string
}

// New creates a store for the given domain namespace. Call Load before
// first use to pick up previously saved history.
func New[E Entry](kv storage.KV, namespace string, logger *logging.Logger) *Store[E] {
	return &Store[E]{
		kv:     kv,
		keys:   KeysFor(namespace),
		logger: logger,
	}
}

// Load reads the saved session list and active pointer. A malformed
// payload is logged and treated as no history; a saved active id that no
// longer matches any session leaves the pointer unset. Load never fails.
func (s *Store[E]) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	s.activeID = ""

	data, err := s.kv.Get(s.keys.Sessions)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read saved sessions",
				zap.String("key", s.keys.Sessions), zap.Error(err))
		}
		return
	}

	var sessions []*Session[E]
	if err := sonic.Unmarshal(data, &sessions); err != nil {
		s.logger.Warn("failed to parse saved sessions, starting empty",
			zap.String("key", s.keys.Sessions), zap.Error(err))
		return
	}
	s.sessions = sessions

	active, err := s.kv.Get(s.keys.Active)
	if err != nil {
		return
	}
	candidate := string(active)
	for _, sess := range s.sessions {
		if sess.ID == candidate {
			s.activeID = candidate
			break
		}
	}
}

// CreateSession builds a new session with a fresh creation-time-derived
// id and the default title, prepends it, and makes it active.
func (s *Store[E]) CreateSession() (Session[E], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.newSessionLocked(DefaultTitle)
	if err := s.persistLocked(); err != nil {
		return Session[E]{}, err
	}
	return *sess, nil
}

// EnsureActiveSession returns the active session id, creating a session
// titled from seed when none is active.
func (s *Store[E]) EnsureActiveSession(seed string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID != "" {
		return s.activeID, nil
	}

	sess := s.newSessionLocked(DeriveTitle(seed))
	if err := s.persistLocked(); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// AppendEntry appends entry to the named session. The first entry also
// titles the session from its primary text, unless the session already
// carries a non-default title.
func (s *Store[E]) AppendEntry(sessionID string, entry E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(sessionID)
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if len(sess.Entries) == 0 && sess.Title == DefaultTitle {
		sess.Title = DeriveTitle(entry.PrimaryText())
	}
	sess.Entries = append(sess.Entries, entry)

	return s.persistLocked()
}

// UpdateEntry replaces the entry at index with the result of patch.
// Only translation entries use this path (retranslate and edit).
func (s *Store[E]) UpdateEntry(sessionID string, index int, patch func(E) (E, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(sessionID)
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if index < 0 || index >= len(sess.Entries) {
		return fmt.Errorf("%w: %d", ErrEntryOutOfRange, index)
	}

	updated, err := patch(sess.Entries[index])
	if err != nil {
		return err
	}
	sess.Entries[index] = updated

	return s.persistLocked()
}

// DeleteSession removes the session. Deleting the active session clears
// the active pointer; no other session is auto-selected.
func (s *Store[E]) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.ID == sessionID {
			found = true
			continue
		}
		kept = append(kept, sess)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.sessions = kept

	if s.activeID == sessionID {
		s.activeID = ""
	}

	return s.persistLocked()
}

// ClearAll empties the list, clears the pointer, and removes both keys
// from the key-value store. This is the only path that removes the keys.
func (s *Store[E]) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	s.activeID = ""

	if err := s.kv.Delete(s.keys.Sessions); err != nil {
		return err
	}
	return s.kv.Delete(s.keys.Active)
}

// SetActive points the active pointer at sessionID. Stale ids are the
// caller's responsibility; no validation error is raised here.
func (s *Store[E]) SetActive(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = sessionID
	return s.persistLocked()
}

// ActiveID returns the active session id, or "" when none is active.
func (s *Store[E]) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// List returns a snapshot of all sessions, most recent first.
func (s *Store[E]) List() []Session[E] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Session[E], len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = *sess
	}
	return out
}

// Get returns a snapshot of one session.
func (s *Store[E]) Get(sessionID string) (Session[E], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.findLocked(sessionID); sess != nil {
		return *sess, true
	}
	return Session[E]{}, false
}

func (s *Store[E]) newSessionLocked(title string) *Session[E] {
	sess := &Session[E]{
		ID:        id.NewSessionID().String(),
		Title:     title,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	s.sessions = append([]*Session[E]{sess}, s.sessions...)
	s.activeID = sess.ID
	return sess
}

func (s *Store[E]) findLocked(sessionID string) *Session[E] {
	for _, sess := range s.sessions {
		if sess.ID == sessionID {
			return sess
		}
	}
	return nil
}

// persistLocked mirrors state to the key-value store. The list is written
// only while non-empty so an empty in-memory list never clobbers saved
// history before Load has run; the active pointer is written whenever set.
func (s *Store[E]) persistLocked() error {
	if len(s.sessions) > 0 {
		data, err := sonic.Marshal(s.sessions)
		if err != nil {
			return fmt.Errorf("failed to marshal sessions: %w", err)
		}
		if err := s.kv.Set(s.keys.Sessions, data); err != nil {
			return fmt.Errorf("failed to save sessions: %w", err)
		}
	}
	if s.activeID != "" {
		if err := s.kv.Set(s.keys.Active, []byte(s.activeID)); err != nil {
			return fmt.Errorf("failed to save active session: %w", err)
		}
	}
	return nil
}
