package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"omanvat/internal/customfield"
	"omanvat/internal/model"
	"omanvat/internal/repository"
)

// Roles that may create and edit the Oman VAT setting
var settingEditorRoles = []string{model.RoleAccountsManager, model.RoleAccountsUser, model.RoleSystemManager}

// InstallSummary reports what Install applied.
type InstallSummary struct {
	Permissions  int    `json:"permissions"`
	CustomFields int    `json:"custom_fields"`
	Report       string `json:"report"`
}

// --- Interface ---

type SetupService interface {
	Install(ctx context.Context) (*InstallSummary, error)
	AddPermissions(ctx context.Context) (int, error)
	RegisterCustomFields(ctx context.Context, mapping customfield.Mapping) (int, error)
	EnableReport(ctx context.Context, name string) error
	ListCustomFields(ctx context.Context, docType string) ([]model.CustomField, error)
	ListPermissions(ctx context.Context) ([]model.DocPerm, error)
}

type setupService struct {
	permRepo   repository.PermissionRepository
	fieldRepo  repository.CustomFieldRepository
	reportRepo repository.ReportRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
}

func NewSetupService(
	permRepo repository.PermissionRepository,
	fieldRepo repository.CustomFieldRepository,
	reportRepo repository.ReportRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SetupService {
	return &setupService{
		permRepo:   permRepo,
		fieldRepo:  fieldRepo,
		reportRepo: reportRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
	}
}

// --- Implementation ---

// Install grants the setting permissions, registers the Oman custom fields and enables the
// OMAN VAT report in one transaction. Running it again changes nothing.
func (s *setupService) Install(ctx context.Context) (*InstallSummary, error) {
	summary := &InstallSummary{Report: model.ReportOmanVAT}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		perms, err := s.AddPermissions(txCtx)
		if err != nil {
			return err
		}
		summary.Permissions = perms

		fields, err := s.RegisterCustomFields(txCtx, customfield.Oman())
		if err != nil {
			return err
		}
		summary.CustomFields = fields

		return s.EnableReport(txCtx, model.ReportOmanVAT)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "oman vat localization installed",
		"permissions", summary.Permissions, "custom_fields", summary.CustomFields)
	return summary, nil
}

// AddPermissions grants "All" read access to the setting and lets the accounting and system
// managers create and edit it. Only System Manager may delete it. It returns the number of
// roles granted.
func (s *setupService) AddPermissions(ctx context.Context) (int, error) {
	docType := model.DocTypeOmanVATSetting

	if err := s.permRepo.AddPermission(ctx, docType, model.RoleAll, 0); err != nil {
		return 0, fmt.Errorf("failed to grant '%s' on %s: %w", model.RoleAll, docType, err)
	}

	for _, role := range settingEditorRoles {
		if err := s.permRepo.AddPermission(ctx, docType, role, 0); err != nil {
			return 0, fmt.Errorf("failed to grant '%s' on %s: %w", role, docType, err)
		}
		for _, right := range []string{model.RightWrite, model.RightCreate} {
			if err := s.permRepo.UpdateProperty(ctx, docType, role, 0, right, true); err != nil {
				return 0, fmt.Errorf("failed to set %s for '%s' on %s: %w", right, role, docType, err)
			}
		}
	}

	if err := s.permRepo.UpdateProperty(ctx, docType, model.RoleSystemManager, 0, model.RightDelete, true); err != nil {
		return 0, fmt.Errorf("failed to set %s for '%s' on %s: %w", model.RightDelete, model.RoleSystemManager, docType, err)
	}

	granted := len(settingEditorRoles) + 1
	writeAuditLog(ctx, s.auditRepo, model.ActionGrantPermissions, "DocType", docType, map[string]interface{}{
		"roles": append([]string{model.RoleAll}, settingEditorRoles...),
	})
	return granted, nil
}

// RegisterCustomFields validates the whole mapping before writing anything, then upserts every
// field. It returns the number of fields written.
func (s *setupService) RegisterCustomFields(ctx context.Context, mapping customfield.Mapping) (int, error) {
	if err := mapping.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	docTypes := make([]string, 0, len(mapping))
	for docType := range mapping {
		docTypes = append(docTypes, docType)
	}
	sort.Strings(docTypes)

	written := 0
	for _, docType := range docTypes {
		for _, def := range mapping[docType] {
			field := def.ToModel(docType)
			if err := s.fieldRepo.Upsert(ctx, &field); err != nil {
				return written, fmt.Errorf("failed to register %s.%s: %w", docType, def.Fieldname, err)
			}
			written++
		}
	}

	writeAuditLog(ctx, s.auditRepo, model.ActionRegisterCustomFields, "CustomField", "", map[string]int{
		"doctypes": len(docTypes),
		"fields":   written,
	})
	return written, nil
}

func (s *setupService) EnableReport(ctx context.Context, name string) error {
	if err := s.reportRepo.SetDisabled(ctx, name, false); err != nil {
		return fmt.Errorf("failed to enable report '%s': %w", name, err)
	}
	writeAuditLog(ctx, s.auditRepo, model.ActionEnableReport, "Report", name, map[string]bool{"disabled": false})
	return nil
}

func (s *setupService) ListCustomFields(ctx context.Context, docType string) ([]model.CustomField, error) {
	fields, err := s.fieldRepo.ListByDocType(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch custom fields: %w", err)
	}
	return fields, nil
}

func (s *setupService) ListPermissions(ctx context.Context) ([]model.DocPerm, error) {
	perms, err := s.permRepo.ListByDocType(ctx, model.DocTypeOmanVATSetting)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	return perms, nil
}
