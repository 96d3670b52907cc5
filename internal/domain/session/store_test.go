package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sync-cloud/backend/internal/infrastructure/logging"
	"github.com/sync-cloud/backend/internal/storage"
)

type note struct {
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

func (n note) PrimaryText() string { return n.Text }

func newTestStore(t *testing.T) (*Store[note], storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	return New[note](kv, "notes", logging.NewNop()), kv
}

func TestCreateSessionPrependsAndActivates(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.CreateSession()
	require.NoError(t, err)
	second, err := store.CreateSession()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, DefaultTitle, first.Title)
	assert.Equal(t, second.ID, store.ActiveID())

	// most-recent-first ordering
	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestEnsureActiveSessionIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	id1, err := store.EnsureActiveSession("hello world")
	require.NoError(t, err)
	id2, err := store.EnsureActiveSession("something else")
	require.NoError(t, err)

	assert.Equal(t, id1, id2)

	sess, ok := store.Get(id1)
	require.True(t, ok)
	assert.Equal(t, "hello world", sess.Title)
}

func TestTitleTruncation(t *testing.T) {
	t.Run("exactly 30 chars kept verbatim", func(t *testing.T) {
		seed := strings.Repeat("a", 30)
		assert.Equal(t, seed, DeriveTitle(seed))
	})

	t.Run("31 chars truncated with ellipsis", func(t *testing.T) {
		seed := strings.Repeat("a", 31)
		got := DeriveTitle(seed)
		assert.Equal(t, strings.Repeat("a", 30)+"...", got)
	})

	t.Run("multibyte runes counted as characters", func(t *testing.T) {
		seed := strings.Repeat("ü", 31)
		assert.Equal(t, strings.Repeat("ü", 30)+"...", DeriveTitle(seed))
	})
}

func TestAppendEntryTitlesFirstEntryOnly(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.CreateSession()
	require.NoError(t, err)

	require.NoError(t, store.AppendEntry(sess.ID, note{Text: "first message"}))
	require.NoError(t, store.AppendEntry(sess.ID, note{Text: "second message"}))

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "first message", got.Title)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "first message", got.Entries[0].Text)
	assert.Equal(t, "second message", got.Entries[1].Text)
}

func TestAppendEntryKeepsNonDefaultTitle(t *testing.T) {
	store, _ := newTestStore(t)

	// ensure-created sessions are titled from the seed immediately
	sid, err := store.EnsureActiveSession("seeded title")
	require.NoError(t, err)

	require.NoError(t, store.AppendEntry(sid, note{Text: "entry text"}))

	got, _ := store.Get(sid)
	assert.Equal(t, "seeded title", got.Title)
}

func TestAppendEntryUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.AppendEntry("sess_missing", note{Text: "x"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, kv := newTestStore(t)

	a, err := store.CreateSession()
	require.NoError(t, err)
	require.NoError(t, store.AppendEntry(a.ID, note{Text: "alpha", Tag: "t1"}))

	b, err := store.CreateSession()
	require.NoError(t, err)
	require.NoError(t, store.AppendEntry(b.ID, note{Text: "beta"}))

	// reload into a fresh store over the same KV
	reloaded := New[note](kv, "notes", logging.NewNop())
	reloaded.Load()

	want := store.List()
	got := reloaded.List()
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Entries, got[i].Entries)
	}
	assert.Equal(t, store.ActiveID(), reloaded.ActiveID())
}

func TestLoadCorruptPayloadFailsOpen(t *testing.T) {
	kv := storage.NewMemory()
	keys := KeysFor("notes")
	require.NoError(t, kv.Set(keys.Sessions, []byte("{not json")))
	require.NoError(t, kv.Set(keys.Active, []byte("sess_x")))

	store := New[note](kv, "notes", logging.NewNop())
	store.Load()

	assert.Empty(t, store.List())
	assert.Empty(t, store.ActiveID())
}

func TestLoadStaleActivePointer(t *testing.T) {
	store, kv := newTestStore(t)

	sess, err := store.CreateSession()
	require.NoError(t, err)
	require.NoError(t, store.AppendEntry(sess.ID, note{Text: "keep"}))

	// point the saved active id at a session that no longer exists
	require.NoError(t, kv.Set(KeysFor("notes").Active, []byte("sess_gone")))

	reloaded := New[note](kv, "notes", logging.NewNop())
	reloaded.Load()

	assert.Len(t, reloaded.List(), 1)
	assert.Empty(t, reloaded.ActiveID())
}

func TestDeleteSessionPointerHandling(t *testing.T) {
	store, _ := newTestStore(t)

	a, _ := store.CreateSession()
	b, _ := store.CreateSession() // active

	t.Run("deleting a non-active session leaves pointer", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(a.ID))
		assert.Equal(t, b.ID, store.ActiveID())
	})

	t.Run("deleting the active session clears pointer", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(b.ID))
		assert.Empty(t, store.ActiveID())
	})

	t.Run("deleting unknown session errors", func(t *testing.T) {
		assert.ErrorIs(t, store.DeleteSession(b.ID), ErrSessionNotFound)
	})
}

func TestClearAllThenLoad(t *testing.T) {
	store, kv := newTestStore(t)

	sess, _ := store.CreateSession()
	require.NoError(t, store.AppendEntry(sess.ID, note{Text: "x"}))
	require.NoError(t, store.ClearAll())

	reloaded := New[note](kv, "notes", logging.NewNop())
	reloaded.Load()

	assert.Empty(t, reloaded.List())
	assert.Empty(t, reloaded.ActiveID())

	_, err := kv.Get(KeysFor("notes").Sessions)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = kv.Get(KeysFor("notes").Active)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateEntry(t *testing.T) {
	store, _ := newTestStore(t)

	sess, _ := store.CreateSession()
	require.NoError(t, store.AppendEntry(sess.ID, note{Text: "one"}))
	require.NoError(t, store.AppendEntry(sess.ID, note{Text: "two"}))

	t.Run("replaces the indexed entry only", func(t *testing.T) {
		err := store.UpdateEntry(sess.ID, 1, func(n note) (note, error) {
			n.Tag = "patched"
			return n, nil
		})
		require.NoError(t, err)

		got, _ := store.Get(sess.ID)
		assert.Equal(t, note{Text: "one"}, got.Entries[0])
		assert.Equal(t, note{Text: "two", Tag: "patched"}, got.Entries[1])
	})

	t.Run("out of range index errors", func(t *testing.T) {
		err := store.UpdateEntry(sess.ID, 5, func(n note) (note, error) { return n, nil })
		assert.ErrorIs(t, err, ErrEntryOutOfRange)

		err = store.UpdateEntry(sess.ID, -1, func(n note) (note, error) { return n, nil })
		assert.ErrorIs(t, err, ErrEntryOutOfRange)
	})
}

func TestPersistedListMatchesMemoryWhileNonEmpty(t *testing.T) {
	store, kv := newTestStore(t)

	sess, _ := store.CreateSession()
	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, store.AppendEntry(sess.ID, note{Text: text}))

		reloaded := New[note](kv, "notes", logging.NewNop())
		reloaded.Load()
		assert.Equal(t, store.List(), reloaded.List())
	}
}

func TestAdapterAppendAndMerge(t *testing.T) {
	kv := storage.NewMemory()
	store := New[note](kv, "notes", logging.NewNop())
	stamped := 0
	adapter := NewAdapter(store, func(n note) note {
		stamped++
		return n
	})

	sid, err := adapter.Append([]byte(`{"text":"from the wire"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, stamped)

	sess, ok := store.Get(sid)
	require.True(t, ok)
	assert.Equal(t, "from the wire", sess.Title)
	require.Len(t, sess.Entries, 1)

	t.Run("update merges partial JSON onto the stored entry", func(t *testing.T) {
		require.NoError(t, adapter.Update(sid, 0, []byte(`{"tag":"edited"}`)))

		got, _ := store.Get(sid)
		assert.Equal(t, "from the wire", got.Entries[0].Text)
		assert.Equal(t, "edited", got.Entries[0].Tag)
	})

	t.Run("bad payload rejected", func(t *testing.T) {
		_, err := adapter.Append([]byte("nope"))
		assert.Error(t, err)
	})
}
