package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/admin/usecases"
	"coachdesk/internal/shared/utils"
)

type AuditHandler struct {
	listAuditLogUC *usecases.ListAuditLogUseCase
}

func NewAuditHandler(listAuditLogUC *usecases.ListAuditLogUseCase) *AuditHandler {
	return &AuditHandler{listAuditLogUC: listAuditLogUC}
}

// ListAuditLog returns the audit trail, newest first. Filters: actor_id,
// action, entity_type, entity_id, from, to (RFC 3339).
func (h *AuditHandler) ListAuditLog(c *gin.Context) {
	query := usecases.ListAuditLogQuery{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "page_size"),
	}

	if actorID := queryInt(c, "actor_id"); actorID > 0 {
		id := uint(actorID)
		query.ActorID = &id
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		query.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		query.To = &to
	}

	result, err := h.listAuditLogUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
