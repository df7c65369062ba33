package handler

import (
	"net/http"

	"omanvat/internal/middleware"
	"omanvat/internal/model"
	"omanvat/internal/service"
	"omanvat/pkg/response"

	"github.com/gin-gonic/gin"
)

type SetupHandler struct {
	setupService       service.SetupService
	taxTemplateService service.TaxTemplateService
	auth               *middleware.Auth
}

func NewSetupHandler(setupService service.SetupService, taxTemplateService service.TaxTemplateService, auth *middleware.Auth) *SetupHandler {
	return &SetupHandler{setupService: setupService, taxTemplateService: taxTemplateService, auth: auth}
}

func (h *SetupHandler) RegisterRoutes(router *gin.RouterGroup) {
	setup := router.Group("/api/setup")
	setup.Use(h.auth.RequireRole(model.RoleSystemManager))
	{
		setup.POST("/install", h.Install)
		setup.POST("/tax-templates/:company", h.ImportTaxTemplates)
		setup.GET("/permissions", h.ListPermissions)
	}

	fields := router.Group("/api/custom-fields")
	fields.Use(h.auth.RequireRole(model.RoleSystemManager, model.RoleAccountsManager))
	{
		fields.GET("", h.ListCustomFields)
	}
}

// Install grants permissions, registers custom fields and enables the OMAN VAT report
// @Summary      Install the Oman VAT localization
// @Tags         setup
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.InstallSummary}
// @Router       /api/setup/install [post]
func (h *SetupHandler) Install(c *gin.Context) {
	summary, err := h.setupService.Install(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.auth.ClearPermissionCache()
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// ImportTaxTemplates imports the bundled Oman tax templates for a company
// @Summary      Import tax templates
// @Tags         setup
// @Security     BearerAuth
// @Produce      json
// @Param        company  path      string  true  "Company name"
// @Success      200      {object}  response.Response{data=service.ImportSummary}
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/setup/tax-templates/{company} [post]
func (h *SetupHandler) ImportTaxTemplates(c *gin.Context) {
	company := c.Param("company")

	summary, err := h.taxTemplateService.SetupTaxTemplates(c.Request.Context(), company)
	if err != nil {
		respondError(c, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, "company '"+company+"' is not in Oman"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// ListPermissions returns the permission grants on the Oman VAT setting
// @Summary      List Oman VAT setting permissions
// @Tags         setup
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.DocPerm}
// @Router       /api/setup/permissions [get]
func (h *SetupHandler) ListPermissions(c *gin.Context) {
	perms, err := h.setupService.ListPermissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, perms))
}

// ListCustomFields returns registered custom fields, optionally for one document type
// @Summary      List custom fields
// @Tags         setup
// @Security     BearerAuth
// @Produce      json
// @Param        dt  query     string  false  "Document type"
// @Success      200 {object}  response.Response{data=[]model.CustomField}
// @Router       /api/custom-fields [get]
func (h *SetupHandler) ListCustomFields(c *gin.Context) {
	fields, err := h.setupService.ListCustomFields(c.Request.Context(), c.Query("dt"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, fields))
}
