package constants

// Static route constants
const (
	BillingRoute     = "/billing"
	PlansRoute       = "/plans"
	SponsorshipRoute = "/billing/sponsorship"
	UpgradeRoute     = "/billing/upgrade"
	LoginRoute       = "/login"
)
