package billing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/corvidchat/corvid/app/models"
	"github.com/corvidchat/corvid/app/repository"
	"github.com/corvidchat/corvid/internal/pkg/constants"
	"github.com/corvidchat/corvid/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// RedirectPage identifies the destination bucket of a billing redirect.
// Each session variant supplies its own concrete target URL.
type RedirectPage int

const (
	PageSponsorship RedirectPage = iota
	PagePlans
	PageUpgrade
)

// Session is the uniform capability set over the three billable account
// kinds. Resolve and ApplyUpdate only ever talk to this interface, so
// the routing order and the plan state machine cannot drift between
// organizations, remote realms and remote servers.
type Session interface {
	AccountKind() string
	AccountID() uint
	AccountName() string
	BillingBaseURL() string
	// Principal returns the acting user, or nil when the mutation has
	// no attributable actor. Audit entries then mark the attribution
	// as degraded instead of dropping it.
	Principal() *models.User
	HasBillingAccess() bool
	OnSponsorshipTier() bool
	OnPlansPageTier() bool
	// GetCustomer returns (nil, nil) when the account never engaged billing.
	GetCustomer() (*models.Customer, error)
	HasPlanHistory(customer *models.Customer) (bool, error)
	// CurrentPlan returns (nil, nil) when the customer has no live plan.
	CurrentPlan(customer *models.Customer) (*models.CustomerPlan, error)
	OnPaidPlan() (bool, error)
	// CurrentLicenseCount is the number of seats in use, the floor for
	// license updates.
	CurrentLicenseCount() (int, error)
	BillingPageContext() (map[string]interface{}, error)
	RedirectTarget(page RedirectPage) string
	// PersistPlanChanges commits field updates plus the audit entry
	// atomically, guarded by the status the plan was read with.
	PersistPlanChanges(plan *models.CustomerPlan, updates map[string]interface{}, audit *models.BillingAuditLog) error
	RecordAudit(eventType string, extra map[string]interface{}) error

	DoUpdatePlan(req *UpdatePlanRequest) error
	DoCancel() error
	RequestSponsorship() error
}

// sessionBase carries the per-account identity and implements every
// capability that is identical across the three variants.
type sessionBase struct {
	kind      string
	accountID uint
	planType  int
	name      string
	baseURL   string
	user      *models.User
	repos     *repository.Repositories
}

func (b *sessionBase) AccountKind() string    { return b.kind }
func (b *sessionBase) AccountID() uint        { return b.accountID }
func (b *sessionBase) AccountName() string    { return b.name }
func (b *sessionBase) BillingBaseURL() string { return b.baseURL }
func (b *sessionBase) Principal() *models.User {
	return b.user
}

func (b *sessionBase) OnSponsorshipTier() bool {
	return entitlements.IsSponsorshipTier(b.kind, b.planType)
}

func (b *sessionBase) OnPlansPageTier() bool {
	return entitlements.IsPlansPageTier(b.kind, b.planType)
}

func (b *sessionBase) GetCustomer() (*models.Customer, error) {
	customer, err := b.repos.Customer.GetByAccount(b.kind, b.accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (b *sessionBase) HasPlanHistory(customer *models.Customer) (bool, error) {
	return b.repos.CustomerPlan.ExistsForCustomer(customer.ID)
}

func (b *sessionBase) CurrentPlan(customer *models.Customer) (*models.CustomerPlan, error) {
	plan, err := b.repos.CustomerPlan.GetCurrentPlan(customer.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// OnPaidPlan reports whether the account currently pays: a paid tier
// plus a live plan row.
func (b *sessionBase) OnPaidPlan() (bool, error) {
	if !entitlements.IsPaidTier(b.kind, b.planType) {
		return false, nil
	}
	customer, err := b.GetCustomer()
	if err != nil || customer == nil {
		return false, err
	}
	plan, err := b.CurrentPlan(customer)
	if err != nil {
		return false, err
	}
	return plan != nil && plan.IsLive(), nil
}

// BillingPageContext assembles the context shown on the billing page.
// Only called once resolution has established that a live plan exists.
func (b *sessionBase) BillingPageContext() (map[string]interface{}, error) {
	ctx := map[string]interface{}{
		"org_name":         b.name,
		"billing_base_url": b.baseURL,
		"plan_type":        entitlements.PlanTypeName(b.kind, b.planType),
		"has_active_plan":  false,
	}

	customer, err := b.GetCustomer()
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return ctx, nil
	}
	plan, err := b.CurrentPlan(customer)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return ctx, nil
	}

	ctx["has_active_plan"] = true
	ctx["plan_status"] = models.PlanStatusName(plan.Status)
	ctx["billing_schedule"] = models.BillingScheduleName(plan.BillingSchedule)
	ctx["licenses"] = plan.Licenses
	ctx["free_trial"] = plan.Status == models.PlanStatusFreeTrial
	if plan.LicensesAtNextRenewal != nil {
		ctx["licenses_at_next_renewal"] = *plan.LicensesAtNextRenewal
	}
	if plan.CurrentPeriodEnd != nil {
		ctx["current_period_end"] = plan.CurrentPeriodEnd
	}
	return ctx, nil
}

func (b *sessionBase) PersistPlanChanges(plan *models.CustomerPlan, updates map[string]interface{}, audit *models.BillingAuditLog) error {
	return b.repos.CustomerPlan.ApplyPlanUpdate(plan.ID, plan.Status, updates, audit)
}

// RecordAudit writes a standalone audit entry (used by mutations that
// do not go through PersistPlanChanges, e.g. sponsorship requests).
func (b *sessionBase) RecordAudit(eventType string, extra map[string]interface{}) error {
	return b.repos.AuditLog.Create(b.newAuditLog(eventType, extra))
}

func (b *sessionBase) newAuditLog(eventType string, extra map[string]interface{}) *models.BillingAuditLog {
	return buildAuditLog(b.kind, b.accountID, b.user, eventType, extra)
}

func buildAuditLog(accountKind string, accountID uint, actingUser *models.User, eventType string, extra map[string]interface{}) *models.BillingAuditLog {
	payload, err := json.Marshal(extra)
	if err != nil {
		payload = []byte("{}")
	}
	entry := &models.BillingAuditLog{
		EventType:           eventType,
		AccountKind:         accountKind,
		AccountID:           accountID,
		AttributionDegraded: actingUser == nil,
		ExtraData:           string(payload),
	}
	if actingUser != nil {
		entry.ActingUserID = &actingUser.ID
	}
	return entry
}

// RequestSponsorship flags the account's customer as awaiting
// sponsorship approval, creating the customer on first engagement.
func (b *sessionBase) RequestSponsorship() error {
	customer, err := b.repos.Customer.GetOrCreateByAccount(b.kind, b.accountID)
	if err != nil {
		return wrapPersistence("get or create customer", err)
	}
	if customer.SponsorshipPending {
		return nil
	}
	customer.SponsorshipPending = true
	if err := b.repos.Customer.Save(customer); err != nil {
		return wrapPersistence("save customer", err)
	}
	return b.RecordAudit(models.AuditEventSponsorshipRequested, nil)
}

// OrganizationBillingSession is the billing session for a cloud-hosted
// organization. The acting user may legitimately be nil on internal
// code paths; audit attribution is then degraded, never dropped.
type OrganizationBillingSession struct {
	sessionBase
	org *models.Organization
}

func NewOrganizationBillingSession(org *models.Organization, actingUser *models.User, repos *repository.Repositories) *OrganizationBillingSession {
	return &OrganizationBillingSession{
		sessionBase: sessionBase{
			kind:      models.AccountKindOrganization,
			accountID: org.ID,
			planType:  org.PlanType,
			name:      org.Name,
			baseURL:   "",
			user:      actingUser,
			repos:     repos,
		},
		org: org,
	}
}

func (s *OrganizationBillingSession) HasBillingAccess() bool {
	return s.user != nil && s.user.HasBillingAccess()
}

// CurrentLicenseCount counts the organization's active seats.
func (s *OrganizationBillingSession) CurrentLicenseCount() (int, error) {
	count, err := s.repos.User.CountActiveByOrganization(s.org.ID)
	return int(count), err
}

func (s *OrganizationBillingSession) RedirectTarget(page RedirectPage) string {
	switch page {
	case PageSponsorship:
		return constants.SponsorshipRoute
	case PagePlans:
		return constants.PlansRoute
	default:
		return constants.UpgradeRoute
	}
}

func (s *OrganizationBillingSession) DoUpdatePlan(req *UpdatePlanRequest) error {
	return ApplyUpdate(s, req)
}

func (s *OrganizationBillingSession) DoCancel() error {
	return cancelPlan(s)
}

// RemoteRealmBillingSession is the billing session for a realm on a
// self-hosted server registered for per-realm billing. Access control
// happens in the remote management authentication at the boundary.
type RemoteRealmBillingSession struct {
	sessionBase
	realm *models.RemoteRealm
}

func NewRemoteRealmBillingSession(realm *models.RemoteRealm, actingUser *models.User, repos *repository.Repositories) *RemoteRealmBillingSession {
	return &RemoteRealmBillingSession{
		sessionBase: sessionBase{
			kind:      models.AccountKindRemoteRealm,
			accountID: realm.ID,
			planType:  realm.PlanType,
			name:      realm.Name,
			baseURL:   fmt.Sprintf("/realm/%s", realm.UUID),
			user:      actingUser,
			repos:     repos,
		},
		realm: realm,
	}
}

// HasBillingAccess is always true here: the remote management
// authentication already gated the request before a session exists.
func (s *RemoteRealmBillingSession) HasBillingAccess() bool {
	return true
}

// CurrentLicenseCount is the seat count from the server's last audit push.
func (s *RemoteRealmBillingSession) CurrentLicenseCount() (int, error) {
	return s.realm.LastAuditedLicenseCount, nil
}

func (s *RemoteRealmBillingSession) RedirectTarget(page RedirectPage) string {
	switch page {
	case PageSponsorship:
		return fmt.Sprintf("/realm/%s/sponsorship", s.realm.UUID)
	case PagePlans:
		return fmt.Sprintf("/realm/%s/plans", s.realm.UUID)
	default:
		return fmt.Sprintf("/realm/%s/upgrade", s.realm.UUID)
	}
}

func (s *RemoteRealmBillingSession) DoUpdatePlan(req *UpdatePlanRequest) error {
	return ApplyUpdate(s, req)
}

func (s *RemoteRealmBillingSession) DoCancel() error {
	return cancelPlan(s)
}

// RemoteServerBillingSession is the billing session for a whole
// self-hosted server billed as one unit.
type RemoteServerBillingSession struct {
	sessionBase
	server *models.RemoteServer
}

func NewRemoteServerBillingSession(server *models.RemoteServer, actingUser *models.User, repos *repository.Repositories) *RemoteServerBillingSession {
	return &RemoteServerBillingSession{
		sessionBase: sessionBase{
			kind:      models.AccountKindRemoteServer,
			accountID: server.ID,
			planType:  server.PlanType,
			name:      server.Hostname,
			baseURL:   fmt.Sprintf("/server/%s", server.UUID),
			user:      actingUser,
			repos:     repos,
		},
		server: server,
	}
}

// HasBillingAccess is always true here, same as for remote realms.
func (s *RemoteServerBillingSession) HasBillingAccess() bool {
	return true
}

// CurrentLicenseCount is the seat count from the server's last audit push.
func (s *RemoteServerBillingSession) CurrentLicenseCount() (int, error) {
	return s.server.LastAuditedLicenseCount, nil
}

func (s *RemoteServerBillingSession) RedirectTarget(page RedirectPage) string {
	switch page {
	case PageSponsorship:
		return fmt.Sprintf("/server/%s/sponsorship", s.server.UUID)
	case PagePlans:
		// Servers on the self-hosted tier have no separate plans page;
		// they are routed straight to upgrade.
		return fmt.Sprintf("/server/%s/upgrade", s.server.UUID)
	default:
		return fmt.Sprintf("/server/%s/upgrade", s.server.UUID)
	}
}

func (s *RemoteServerBillingSession) DoUpdatePlan(req *UpdatePlanRequest) error {
	return ApplyUpdate(s, req)
}

func (s *RemoteServerBillingSession) DoCancel() error {
	return cancelPlan(s)
}
