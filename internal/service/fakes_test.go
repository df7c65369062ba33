package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing/fstest"

	"omanvat/internal/model"
	"omanvat/internal/resource"

	"gorm.io/gorm"
)

// --- Companies ---

type fakeCompanyRepo struct {
	companies map[string]model.Company
	findErr   error
}

func newFakeCompanyRepo(companies ...model.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]model.Company{}}
	for _, c := range companies {
		r.companies[c.Name] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if _, ok := r.companies[company.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.companies[company.Name] = *company
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *model.Company) error {
	if _, ok := r.companies[company.Name]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.companies[company.Name] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, name string) error {
	delete(r.companies, name)
	return nil
}

func (r *fakeCompanyRepo) FindByName(_ context.Context, name string) (*model.Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.companies[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCompanyRepo) List(_ context.Context, page, limit int) ([]model.Company, int64, error) {
	out := make([]model.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

// --- VAT settings ---

type fakeVATSettingRepo struct {
	settings  map[string]model.OmanVATSetting
	creates   int
	createErr error
}

func newFakeVATSettingRepo() *fakeVATSettingRepo {
	return &fakeVATSettingRepo{settings: map[string]model.OmanVATSetting{}}
}

func (r *fakeVATSettingRepo) Exists(_ context.Context, company string) (bool, error) {
	_, ok := r.settings[company]
	return ok, nil
}

func (r *fakeVATSettingRepo) Create(_ context.Context, setting *model.OmanVATSetting) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.settings[setting.Company]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.settings[setting.Company] = *setting
	return nil
}

func (r *fakeVATSettingRepo) FindByCompany(_ context.Context, company string) (*model.OmanVATSetting, error) {
	s, ok := r.settings[company]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := model.OmanVATSetting{Company: s.Company, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	loaded.SetRows(s.Rows())
	return &loaded, nil
}

func (r *fakeVATSettingRepo) Delete(_ context.Context, company string) error {
	delete(r.settings, company)
	return nil
}

// --- Setup ---

type fakeCustomFieldRepo struct {
	fields map[string]model.CustomField
	err    error
}

func newFakeCustomFieldRepo() *fakeCustomFieldRepo {
	return &fakeCustomFieldRepo{fields: map[string]model.CustomField{}}
}

func (r *fakeCustomFieldRepo) Upsert(_ context.Context, field *model.CustomField) error {
	if r.err != nil {
		return r.err
	}
	r.fields[field.DocType+"."+field.Fieldname] = *field
	return nil
}

func (r *fakeCustomFieldRepo) ListByDocType(_ context.Context, docType string) ([]model.CustomField, error) {
	var out []model.CustomField
	for _, f := range r.fields {
		if docType == "" || f.DocType == docType {
			out = append(out, f)
		}
	}
	return out, nil
}

type permKey struct {
	docType, role string
	level         int
}

type fakePermissionRepo struct {
	perms map[permKey]*model.DocPerm
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{perms: map[permKey]*model.DocPerm{}}
}

func (r *fakePermissionRepo) AddPermission(_ context.Context, docType, role string, permLevel int) error {
	key := permKey{docType, role, permLevel}
	if _, ok := r.perms[key]; !ok {
		r.perms[key] = &model.DocPerm{Parent: docType, Role: role, PermLevel: permLevel, Read: true}
	}
	return nil
}

func (r *fakePermissionRepo) UpdateProperty(_ context.Context, docType, role string, permLevel int, right string, value bool) error {
	perm, ok := r.perms[permKey{docType, role, permLevel}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch right {
	case model.RightRead:
		perm.Read = value
	case model.RightWrite:
		perm.Write = value
	case model.RightCreate:
		perm.Create = value
	case model.RightDelete:
		perm.Delete = value
	default:
		return errors.New("unknown right")
	}
	return nil
}

func (r *fakePermissionRepo) ListByDocType(_ context.Context, docType string) ([]model.DocPerm, error) {
	var out []model.DocPerm
	for _, p := range r.perms {
		if p.Parent == docType {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func (r *fakePermissionRepo) HasRight(_ context.Context, docType, role, right string) (bool, error) {
	for _, candidate := range []string{role, model.RoleAll} {
		if p, ok := r.perms[permKey{docType, candidate, 0}]; ok && p.Has(right) {
			return true, nil
		}
	}
	return false, nil
}

type fakeReportRepo struct {
	reports map[string]model.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]model.Report{}}
}

func (r *fakeReportRepo) SetDisabled(_ context.Context, name string, disabled bool) error {
	report := r.reports[name]
	report.Name, report.Disabled = name, disabled
	r.reports[name] = report
	return nil
}

func (r *fakeReportRepo) FindByName(_ context.Context, name string) (*model.Report, error) {
	report, ok := r.reports[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &report, nil
}

// --- Tax templates ---

type fakeTaxTemplateRepo struct {
	accounts      map[string]model.Account // keyed by company + "|" + account_name
	categories    map[string]model.TaxCategory
	taxTemplates  map[string]model.TaxesAndChargesTemplate // keyed by kind + "|" + name
	itemTemplates map[string]model.ItemTaxTemplate
	itemOrder     []string
}

func newFakeTaxTemplateRepo() *fakeTaxTemplateRepo {
	return &fakeTaxTemplateRepo{
		accounts:      map[string]model.Account{},
		categories:    map[string]model.TaxCategory{},
		taxTemplates:  map[string]model.TaxesAndChargesTemplate{},
		itemTemplates: map[string]model.ItemTaxTemplate{},
	}
}

func (r *fakeTaxTemplateRepo) FindAccount(_ context.Context, company, accountName string) (*model.Account, error) {
	a, ok := r.accounts[company+"|"+accountName]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeTaxTemplateRepo) CreateAccount(_ context.Context, account *model.Account) error {
	r.accounts[account.Company+"|"+account.AccountName] = *account
	return nil
}

func (r *fakeTaxTemplateRepo) TaxCategoryExists(_ context.Context, title string) (bool, error) {
	_, ok := r.categories[title]
	return ok, nil
}

func (r *fakeTaxTemplateRepo) CreateTaxCategory(_ context.Context, category *model.TaxCategory) error {
	r.categories[category.Title] = *category
	return nil
}

func (r *fakeTaxTemplateRepo) TaxesAndChargesTemplateExists(_ context.Context, kind, name string) (bool, error) {
	_, ok := r.taxTemplates[kind+"|"+name]
	return ok, nil
}

func (r *fakeTaxTemplateRepo) CreateTaxesAndChargesTemplate(_ context.Context, template *model.TaxesAndChargesTemplate) error {
	r.taxTemplates[template.Kind+"|"+template.Name] = *template
	return nil
}

func (r *fakeTaxTemplateRepo) ItemTaxTemplateExists(_ context.Context, name string) (bool, error) {
	_, ok := r.itemTemplates[name]
	return ok, nil
}

func (r *fakeTaxTemplateRepo) CreateItemTaxTemplate(_ context.Context, template *model.ItemTaxTemplate) error {
	r.itemTemplates[template.Name] = *template
	r.itemOrder = append(r.itemOrder, template.Name)
	return nil
}

func (r *fakeTaxTemplateRepo) ListItemTaxTemplates(_ context.Context, company string) ([]model.ItemTaxTemplate, error) {
	var out []model.ItemTaxTemplate
	for _, name := range r.itemOrder {
		if t := r.itemTemplates[name]; t.Company == company {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- Ambient ---

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
	err     error
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, entityType string, page, limit int) ([]model.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, int64(len(r.entries)), nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeTxHooks struct{}

// fakeTxManager runs fn directly and counts calls so tests can see nesting. Like the real
// manager it joins an outer call and runs AfterCommit hooks only when the outermost fn succeeds.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	m.calls++
	if _, ok := ctx.Value(fakeTxHooks{}).(*[]func()); ok {
		return fn(ctx)
	}

	var hooks []func()
	if err := fn(context.WithValue(ctx, fakeTxHooks{}, &hooks)); err != nil {
		return err
	}
	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (m *fakeTxManager) AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(fakeTxHooks{}).(*[]func()); ok {
		*hooks = append(*hooks, fn)
		return
	}
	fn()
}

type publishedEvent struct {
	name    string
	payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{event, payload})
}

func (p *fakePublisher) names() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.name)
	}
	return out
}

// templateFS builds a resource reader over in-memory JSON files.
func templateFS(files map[string]string) resource.Reader {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return resource.New(fsys)
}

// countingReader records how often each resource is read.
type countingReader struct {
	resource.Reader
	reads map[string]int
}

func newCountingReader(r resource.Reader) *countingReader {
	return &countingReader{Reader: r, reads: map[string]int{}}
}

func (r *countingReader) ReadJSON(name string, v any) error {
	r.reads[name]++
	return r.Reader.ReadJSON(name, v)
}
