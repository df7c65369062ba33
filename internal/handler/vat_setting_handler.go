package handler

import (
	"net/http"

	"omanvat/internal/middleware"
	"omanvat/internal/model"
	"omanvat/internal/service"
	"omanvat/pkg/response"

	"github.com/gin-gonic/gin"
)

type VATSettingHandler struct {
	vatSettingService  service.VATSettingService
	taxTemplateService service.TaxTemplateService
	auth               *middleware.Auth
}

func NewVATSettingHandler(vatSettingService service.VATSettingService, taxTemplateService service.TaxTemplateService, auth *middleware.Auth) *VATSettingHandler {
	return &VATSettingHandler{vatSettingService: vatSettingService, taxTemplateService: taxTemplateService, auth: auth}
}

func (h *VATSettingHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/oman-vat-settings")
	{
		settings.GET("/:company", h.auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightRead), h.GetVATSetting)
		settings.POST("/:company", h.auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightCreate), h.CreateVATSetting)
		settings.DELETE("/:company", h.auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightDelete), h.DeleteVATSetting)
	}

	templates := router.Group("/api/item-tax-templates")
	templates.Use(h.auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightRead))
	{
		templates.GET("/:company", h.ListItemTaxTemplates)
	}
}

// GetVATSetting returns the company's Oman VAT setting
// @Summary      Get Oman VAT setting
// @Tags         oman-vat-settings
// @Security     BearerAuth
// @Produce      json
// @Param        company  path      string  true  "Company name"
// @Success      200      {object}  response.Response{data=model.OmanVATSetting}
// @Failure      404      {object}  response.Response
// @Router       /api/oman-vat-settings/{company} [get]
func (h *VATSettingHandler) GetVATSetting(c *gin.Context) {
	setting, err := h.vatSettingService.GetVATSetting(c.Request.Context(), c.Param("company"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, setting))
}

// CreateVATSetting creates the company's Oman VAT setting unless it already exists
// @Summary      Create Oman VAT setting
// @Tags         oman-vat-settings
// @Security     BearerAuth
// @Produce      json
// @Param        company  path      string  true  "Company name"
// @Success      201      {object}  response.Response{data=model.OmanVATSetting}
// @Success      200      {object}  response.Response{data=model.OmanVATSetting}
// @Failure      404      {object}  response.Response
// @Router       /api/oman-vat-settings/{company} [post]
func (h *VATSettingHandler) CreateVATSetting(c *gin.Context) {
	ctx := c.Request.Context()
	company := c.Param("company")

	created, err := h.vatSettingService.CreateIfAbsent(ctx, company)
	if err != nil {
		respondError(c, err)
		return
	}

	setting, err := h.vatSettingService.GetVATSetting(ctx, company)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, response.Success(status, setting))
}

// DeleteVATSetting permanently deletes the company's Oman VAT setting
// @Summary      Delete Oman VAT setting
// @Tags         oman-vat-settings
// @Security     BearerAuth
// @Produce      json
// @Param        company  path      string  true  "Company name"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/oman-vat-settings/{company} [delete]
func (h *VATSettingHandler) DeleteVATSetting(c *gin.Context) {
	company := c.Param("company")

	deleted, err := h.vatSettingService.DeleteVATSetting(c.Request.Context(), company)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "oman vat setting not found: '"+company+"'"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Oman VAT setting deleted successfully"}))
}

// ListItemTaxTemplates returns the item tax templates imported for a company
// @Summary      List item tax templates
// @Tags         oman-vat-settings
// @Security     BearerAuth
// @Produce      json
// @Param        company  path      string  true  "Company name"
// @Success      200      {object}  response.Response{data=[]model.ItemTaxTemplate}
// @Router       /api/item-tax-templates/{company} [get]
func (h *VATSettingHandler) ListItemTaxTemplates(c *gin.Context) {
	templates, err := h.taxTemplateService.ListItemTaxTemplates(c.Request.Context(), c.Param("company"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, templates))
}
