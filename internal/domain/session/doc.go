// Package session implements the chat-style session store shared by the
// email, translate, and weather surfaces.
//
// A store owns an ordered list of sessions (most recent first) and an
// active-session pointer, mirrored to a durable key-value store under a
// per-domain key pair. The store is generic over the entry type; the three
// domains differ only in their entry variant.
//
// Persistence contract:
//   - every mutation re-serializes the full list, but only while the list
//     is non-empty (an empty list never overwrites saved history)
//   - the active pointer is written independently whenever non-empty
//   - ClearAll is the only path that removes the keys outright
//   - a malformed stored payload is logged and treated as no history
package session
