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

type CompanyHandler struct {
	companyService service.CompanyService
	auth           *middleware.Auth
}

func NewCompanyHandler(companyService service.CompanyService, auth *middleware.Auth) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, auth: auth}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/api/companies")
	companies.Use(h.auth.RequireRole(model.RoleSystemManager, model.RoleAccountsManager))
	{
		companies.GET("", h.ListCompanies)
		companies.GET("/:name", h.GetCompany)
		companies.POST("", h.CreateCompany)
		companies.PUT("/:name", h.UpdateCompany)
		companies.DELETE("/:name", h.DeleteCompany)
	}
}

// ListCompanies returns companies ordered by name
// @Summary      List companies
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Page}
// @Router       /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	p := pagination.Parse(c)

	companies, total, err := h.companyService.ListCompanies(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, companies, total, p.Page, p.Limit))
}

// GetCompany returns a single company
// @Summary      Get company
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        name  path      string  true  "Company name"
// @Success      200   {object}  response.Response{data=model.Company}
// @Failure      404   {object}  response.Response
// @Router       /api/companies/{name} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// CreateCompany creates a company; Oman companies get their VAT setup in the same request
// @Summary      Create company
// @Tags         companies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      service.CreateCompanyRequest  true  "Company"
// @Success      201   {object}  response.Response{data=model.Company}
// @Failure      422   {object}  response.Response
// @Router       /api/companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, company))
}

// UpdateCompany changes company attributes; a country change runs the Oman VAT hooks
// @Summary      Update company
// @Tags         companies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        name  path      string                        true  "Company name"
// @Param        body  body      service.UpdateCompanyRequest  true  "Changed attributes"
// @Success      200   {object}  response.Response{data=model.Company}
// @Router       /api/companies/{name} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// DeleteCompany deletes a company and its Oman VAT setting
// @Summary      Delete company
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        name  path      string  true  "Company name"
// @Success      200   {object}  response.Response
// @Router       /api/companies/{name} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.companyService.DeleteCompany(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Company deleted successfully"}))
}
