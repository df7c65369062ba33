package handler

import (
	"net/http"

	"omanvat/internal/middleware"
	"omanvat/internal/model"
	"omanvat/internal/service"
	"omanvat/pkg/pagination"
	"omanvat/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	auth         *middleware.Auth
}

func NewAuditHandler(auditService service.AuditService, auth *middleware.Auth) *AuditHandler {
	return &AuditHandler{auditService: auditService, auth: auth}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	group.Use(h.auth.RequireRole(model.RoleSystemManager))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs returns the setup history, newest first
// @Summary      Get audit logs
// @Description  Lists setup side effects (permissions, custom fields, VAT settings, tax templates)
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        entity_type  query     string  false  "Filter by entity type"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Number of items per page (default 20)"
// @Success      200          {object}  response.Response{data=response.Page}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), c.Query("entity_type"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve audit logs: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, total, p.Page, p.Limit))
}
