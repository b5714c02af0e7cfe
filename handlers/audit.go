package handlers

import (
	"net/http"
	"strconv"

	auditSvc "portflow/services/audit"

	"portflow/models"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the read side of the audit trail.
type AuditHandler struct {
	Audit auditSvc.Recorder
}

func NewAuditHandler(audit auditSvc.Recorder) *AuditHandler {
	return &AuditHandler{Audit: audit}
}

// QueryLogs returns audit entries, newest first.
func (h *AuditHandler) QueryLogs(c *gin.Context) {
	filter := models.AuditFilter{
		EntityType: c.Query("entityType"),
		Action:     c.Query("action"),
		ActorID:    c.Query("actorId"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.ParseInt(limit, 10, 64)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", "")
			return
		}
		filter.Limit = n
	}
	logs, err := h.Audit.Query(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, logs)
}
