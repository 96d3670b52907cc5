package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/infrastructure/monitoring"
	"github.com/sync-cloud/backend/internal/providers/email"
	"github.com/sync-cloud/backend/internal/shared/id"
	"github.com/sync-cloud/backend/internal/shared/types"
)

// SendEmail proxies a transactional email through the vendor and records
// the attempt in the email session history.
func (h *Handlers) SendEmail(c *gin.Context) {
	var req types.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: to, subject, message"})
		return
	}
	if req.To == "" || req.Subject == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: to, subject, message"})
		return
	}

	timer := h.startTimer("brevo")
	messageID, err := h.email.Send(c.Request.Context(), req.To, req.Subject, req.Message)
	if err != nil {
		h.stopTimer(timer, "error")
		h.recordEmailEntry(req, types.StatusFailed)

		if errors.Is(err, email.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email service not configured"})
			return
		}

		var vendorErr *email.VendorError
		if errors.As(err, &vendorErr) {
			c.JSON(vendorErr.StatusCode, gin.H{
				"error":   "Failed to send email",
				"details": vendorErr.Details,
			})
			return
		}

		h.logger.Error("email send failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	h.stopTimer(timer, "ok")
	h.recordEmailEntry(req, types.StatusSent)

	c.JSON(http.StatusOK, types.SendEmailResponse{
		Success:   true,
		MessageID: messageID,
		Message:   "Email sent successfully",
	})
}

func (h *Handlers) recordEmailEntry(req types.SendEmailRequest, status string) {
	entry := types.EmailEntry{
		ID:        id.NewEntryID().String(),
		Recipient: req.To,
		Subject:   req.Subject,
		Message:   req.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
	}
	h.appendEntry("email", entry)
}

// appendEntry records a domain entry in that domain's session history.
// History is best-effort here: a storage failure must not mask the
// vendor outcome already delivered to the client.
func (h *Handlers) appendEntry(domain string, entry any) {
	svc, ok := h.sessions[domain]
	if !ok {
		return
	}
	raw, err := sonic.Marshal(entry)
	if err != nil {
		h.logger.Error("failed to encode session entry",
			zap.String("domain", domain), zap.Error(err))
		return
	}
	if _, err := svc.Append(raw); err != nil {
		h.logger.Error("failed to record session entry",
			zap.String("domain", domain), zap.Error(err))
		return
	}
	if h.metrics != nil {
		h.metrics.IncEntriesAppended(domain)
	}
}

func (h *Handlers) startTimer(vendor string) *monitoring.Timer {
	if h.metrics == nil {
		return nil
	}
	return monitoring.NewTimer(h.metrics, vendor)
}

func (h *Handlers) stopTimer(t *monitoring.Timer, status string) {
	if t != nil {
		t.Stop(status)
	}
}
