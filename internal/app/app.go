// Package app wires repositories and services for the API server and the admin CLI.
package app

import (
	"log/slog"

	"omanvat/internal/config"
	"omanvat/internal/middleware"
	"omanvat/internal/repository"
	"omanvat/internal/resource"
	"omanvat/internal/service"

	"gorm.io/gorm"
)

// App holds the services of one process.
type App struct {
	Config *config.Config
	Auth   *middleware.Auth

	Companies    service.CompanyService
	VATSettings  service.VATSettingService
	TaxTemplates service.TaxTemplateService
	Setup        service.SetupService
	Audit        service.AuditService
}

// New builds every service on db. events may be nil when nobody listens.
func New(cfg *config.Config, db *gorm.DB, events service.EventPublisher) *App {
	resources := Resources(cfg)

	// Set up dependencies (Repository -> Service)
	companyRepo := repository.NewCompanyRepository(db)
	settingRepo := repository.NewVATSettingRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	fieldRepo := repository.NewCustomFieldRepository(db)
	reportRepo := repository.NewReportRepository(db)
	taxRepo := repository.NewTaxTemplateRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	vatSettings := service.NewVATSettingService(companyRepo, settingRepo, auditRepo, txManager, resources, events)
	taxTemplates := service.NewTaxTemplateService(companyRepo, taxRepo, auditRepo, txManager, resources, events)

	return &App{
		Config:       cfg,
		Auth:         middleware.NewAuth(cfg.Secret(), permRepo),
		Companies:    service.NewCompanyService(companyRepo, auditRepo, txManager, vatSettings, taxTemplates),
		VATSettings:  vatSettings,
		TaxTemplates: taxTemplates,
		Setup:        service.NewSetupService(permRepo, fieldRepo, reportRepo, auditRepo, txManager),
		Audit:        service.NewAuditService(auditRepo),
	}
}

// Resources returns the reader for the JSON templates: RESOURCE_DIR when configured,
// the bundled files otherwise.
func Resources(cfg *config.Config) resource.Reader {
	if cfg.ResourceDir != "" {
		slog.Info("reading templates from directory", "dir", cfg.ResourceDir)
		return resource.Dir(cfg.ResourceDir)
	}
	return resource.Bundled()
}
