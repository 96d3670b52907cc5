package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/domain/session"
	"github.com/sync-cloud/backend/internal/providers/translate"
	"github.com/sync-cloud/backend/internal/shared/types"
)

// Translate proxies a translation through the vendor and records the
// result in the translate session history.
func (h *Handlers) Translate(c *gin.Context) {
	var req types.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing text or targetLanguage"})
		return
	}
	if req.Text == "" || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing text or targetLanguage"})
		return
	}

	timer := h.startTimer("translator")
	result, err := h.translate.Translate(c.Request.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		h.stopTimer(timer, "error")
		if errors.Is(err, translate.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Translation service not configured"})
			return
		}
		h.logger.Error("translation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Translation failed"})
		return
	}
	h.stopTimer(timer, "ok")

	h.appendEntry("translate", types.TranslationEntry{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		SourceText:       req.Text,
		TranslatedText:   result.TranslatedText,
		TargetLanguage:   result.TargetLanguage,
		DetectedLanguage: result.DetectedLanguage,
	})

	c.JSON(http.StatusOK, types.TranslateResponse{
		TranslatedText:   result.TranslatedText,
		DetectedLanguage: result.DetectedLanguage,
		TargetLanguage:   result.TargetLanguage,
	})
}

// Languages lists the supported target languages.
func (h *Handlers) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": translate.Languages()})
}

// Retranslate re-runs a stored translation entry into a new target
// language, replacing the translation in place.
func (h *Handlers) Retranslate(c *gin.Context) {
	var req types.RetranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing targetLanguage"})
		return
	}

	entry, index, ok := h.translationEntry(c)
	if !ok {
		return
	}

	timer := h.startTimer("translator")
	result, err := h.translate.Translate(c.Request.Context(), entry.SourceText, req.TargetLanguage)
	if err != nil {
		h.stopTimer(timer, "error")
		h.translateFailure(c, err)
		return
	}
	h.stopTimer(timer, "ok")

	updated, err := h.patchTranslation(c.Param("id"), index, func(e types.TranslationEntry) types.TranslationEntry {
		e.TranslatedText = result.TranslatedText
		e.TargetLanguage = result.TargetLanguage
		e.DetectedLanguage = result.DetectedLanguage
		return e
	})
	if err != nil {
		h.storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// EditTranslation replaces a stored entry's source text, re-derives the
// translation in the entry's current target language, and stamps the
// entry as edited.
func (h *Handlers) EditTranslation(c *gin.Context) {
	var req types.EditTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SourceText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sourceText"})
		return
	}

	entry, index, ok := h.translationEntry(c)
	if !ok {
		return
	}

	timer := h.startTimer("translator")
	result, err := h.translate.Translate(c.Request.Context(), req.SourceText, entry.TargetLanguage)
	if err != nil {
		h.stopTimer(timer, "error")
		h.translateFailure(c, err)
		return
	}
	h.stopTimer(timer, "ok")

	updated, err := h.patchTranslation(c.Param("id"), index, func(e types.TranslationEntry) types.TranslationEntry {
		e.SourceText = req.SourceText
		e.TranslatedText = result.TranslatedText
		e.DetectedLanguage = result.DetectedLanguage
		e.Edited = true
		e.EditedAt = time.Now().UTC().Format(time.RFC3339)
		return e
	})
	if err != nil {
		h.storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// translationEntry resolves the :id/:index pair into a stored entry.
func (h *Handlers) translationEntry(c *gin.Context) (types.TranslationEntry, int, bool) {
	var zero types.TranslationEntry

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry index"})
		return zero, 0, false
	}

	sess, found := h.translateStore.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return zero, 0, false
	}
	if index < 0 || index >= len(sess.Entries) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry index out of range"})
		return zero, 0, false
	}
	return sess.Entries[index], index, true
}

func (h *Handlers) patchTranslation(sessionID string, index int, mutate func(types.TranslationEntry) types.TranslationEntry) (types.TranslationEntry, error) {
	var updated types.TranslationEntry
	err := h.translateStore.UpdateEntry(sessionID, index, func(current types.TranslationEntry) (types.TranslationEntry, error) {
		updated = mutate(current)
		return updated, nil
	})
	return updated, err
}

func (h *Handlers) translateFailure(c *gin.Context, err error) {
	if errors.Is(err, translate.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Translation service not configured"})
		return
	}
	h.logger.Error("translation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Translation failed"})
}

func (h *Handlers) storeFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrEntryOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry index out of range"})
	case errors.Is(err, session.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry patch"})
	default:
		h.logger.Error("session store write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
	}
}
