package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/domain/session"
)

// ListSessions returns all sessions for a domain plus the active pointer.
func (h *Handlers) ListSessions(c *gin.Context) {
	svc, _, ok := h.service(c)
	if !ok {
		return
	}

	sessions, activeID := svc.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions":  sessions,
		"active_id": nullable(activeID),
	})
}

// CreateSession creates a fresh session, prepends it, and makes it active.
func (h *Handlers) CreateSession(c *gin.Context) {
	svc, domain, ok := h.service(c)
	if !ok {
		return
	}

	sess, err := svc.Create()
	if err != nil {
		h.logger.Error("session create failed",
			zap.String("domain", domain), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	if h.metrics != nil {
		h.metrics.IncSessionsCreated(domain)
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// GetSession returns one session by id.
func (h *Handlers) GetSession(c *gin.Context) {
	svc, _, ok := h.service(c)
	if !ok {
		return
	}

	sess, found := svc.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// ActivateSession points the active pointer at the named session.
func (h *Handlers) ActivateSession(c *gin.Context) {
	svc, _, ok := h.service(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	if _, found := svc.Get(sessionID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err := svc.SetActive(sessionID); err != nil {
		h.storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "active_id": sessionID})
}

// DeleteSession removes a session. Deleting the active session clears
// the active pointer.
func (h *Handlers) DeleteSession(c *gin.Context) {
	svc, domain, ok := h.service(c)
	if !ok {
		return
	}

	if err := svc.Delete(c.Param("id")); err != nil {
		h.storeFailure(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncSessionsDeleted(domain)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearSessions removes all sessions and both storage keys for a domain.
func (h *Handlers) ClearSessions(c *gin.Context) {
	svc, domain, ok := h.service(c)
	if !ok {
		return
	}

	if err := svc.Clear(); err != nil {
		h.logger.Error("session clear failed",
			zap.String("domain", domain), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AppendSessionEntry appends an entry to the active session, creating one
// titled from the entry when none is active.
func (h *Handlers) AppendSessionEntry(c *gin.Context) {
	svc, domain, ok := h.service(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entry payload"})
		return
	}

	sessionID, err := svc.Append(raw)
	if err != nil {
		h.appendFailure(c, domain, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncEntriesAppended(domain)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session_id": sessionID})
}

// AppendSessionEntryTo appends an entry to a named session.
func (h *Handlers) AppendSessionEntryTo(c *gin.Context) {
	svc, domain, ok := h.service(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entry payload"})
		return
	}

	sessionID := c.Param("id")
	if err := svc.AppendTo(sessionID, raw); err != nil {
		h.appendFailure(c, domain, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncEntriesAppended(domain)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session_id": sessionID})
}

// UpdateSessionEntry merges a patch into one stored entry. Entries are
// immutable outside the translate domain.
func (h *Handlers) UpdateSessionEntry(c *gin.Context) {
	svc, domain, ok := h.service(c)
	if !ok {
		return
	}
	if domain != "translate" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entries in this domain cannot be modified"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry index"})
		return
	}

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entry patch"})
		return
	}

	if err := svc.Update(c.Param("id"), index, raw); err != nil {
		h.storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) appendFailure(c *gin.Context, domain string, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry payload"})
	default:
		h.logger.Error("session append failed",
			zap.String("domain", domain), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record entry"})
	}
}

// nullable maps the empty active id to JSON null.
func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}
