package billing

import (
	"github.com/corvidchat/corvid/app/models"
)

// fakeSession drives the resolver and the plan-update engine in tests
// without a database. Zero value behaves like an organization admin
// whose account never engaged billing.
type fakeSession struct {
	kind        string
	noAccess    bool
	sponsorTier bool
	plansTier   bool
	paidTier    bool

	customer    *models.Customer
	customerErr error
	plan        *models.CustomerPlan
	planErr     error
	hasHistory  bool
	historyErr  error
	licenses    int
	licensesErr error
	persistErr  error

	principal *models.User

	persistedUpdates map[string]interface{}
	persistedAudit   *models.BillingAuditLog
	recordedAudits   []*models.BillingAuditLog
}

func (f *fakeSession) AccountKind() string {
	if f.kind == "" {
		return models.AccountKindOrganization
	}
	return f.kind
}

func (f *fakeSession) AccountID() uint         { return 1 }
func (f *fakeSession) AccountName() string     { return "acme" }
func (f *fakeSession) BillingBaseURL() string  { return "" }
func (f *fakeSession) Principal() *models.User { return f.principal }
func (f *fakeSession) HasBillingAccess() bool  { return !f.noAccess }
func (f *fakeSession) OnSponsorshipTier() bool { return f.sponsorTier }
func (f *fakeSession) OnPlansPageTier() bool   { return f.plansTier }

func (f *fakeSession) GetCustomer() (*models.Customer, error) {
	return f.customer, f.customerErr
}

func (f *fakeSession) HasPlanHistory(customer *models.Customer) (bool, error) {
	return f.hasHistory, f.historyErr
}

func (f *fakeSession) CurrentPlan(customer *models.Customer) (*models.CustomerPlan, error) {
	if f.planErr != nil {
		return nil, f.planErr
	}
	// Ended and never-started rows are historical, like in the repository.
	if f.plan == nil ||
		f.plan.Status == models.PlanStatusEnded ||
		f.plan.Status == models.PlanStatusNeverStarted {
		return nil, nil
	}
	return f.plan, nil
}

func (f *fakeSession) OnPaidPlan() (bool, error) {
	if !f.paidTier {
		return false, nil
	}
	return f.plan != nil && f.plan.IsLive(), nil
}

func (f *fakeSession) CurrentLicenseCount() (int, error) {
	return f.licenses, f.licensesErr
}

func (f *fakeSession) BillingPageContext() (map[string]interface{}, error) {
	return map[string]interface{}{"org_name": f.AccountName()}, nil
}

func (f *fakeSession) RedirectTarget(page RedirectPage) string {
	switch page {
	case PageSponsorship:
		return "/sponsorship"
	case PagePlans:
		return "/plans"
	default:
		return "/upgrade"
	}
}

func (f *fakeSession) PersistPlanChanges(plan *models.CustomerPlan, updates map[string]interface{}, audit *models.BillingAuditLog) error {
	if f.persistErr != nil {
		return f.persistErr
	}
	f.persistedUpdates = updates
	f.persistedAudit = audit
	return nil
}

func (f *fakeSession) RecordAudit(eventType string, extra map[string]interface{}) error {
	f.recordedAudits = append(f.recordedAudits, buildAuditLog(f.AccountKind(), f.AccountID(), f.principal, eventType, extra))
	return nil
}

func (f *fakeSession) DoUpdatePlan(req *UpdatePlanRequest) error { return ApplyUpdate(f, req) }
func (f *fakeSession) DoCancel() error                           { return cancelPlan(f) }
func (f *fakeSession) RequestSponsorship() error                 { return nil }

func intPtr(n int) *int { return &n }
