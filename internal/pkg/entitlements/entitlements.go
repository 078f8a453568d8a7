package entitlements

import (
	"github.com/corvidchat/corvid/app/models"
)

// Tier classification for billing routing. Each account kind maps its
// own plan-type values onto the three buckets the billing page resolver
// cares about: the sponsorship tier, the plans-page tier and paid tiers.

// IsSponsorshipTier reports whether the plan type belongs to the
// community/limited-free bucket that routes to the sponsorship page.
func IsSponsorshipTier(accountKind string, planType int) bool {
	switch accountKind {
	case models.AccountKindOrganization:
		return planType == models.OrgPlanTypeStandardFree
	case models.AccountKindRemoteRealm:
		return planType == models.RemoteRealmPlanTypeCommunity
	case models.AccountKindRemoteServer:
		return planType == models.RemoteServerPlanTypeCommunity
	default:
		return false
	}
}

// IsPlansPageTier reports whether the plan type belongs to the
// self-hosted/limited bucket that routes to the plan-comparison page.
func IsPlansPageTier(accountKind string, planType int) bool {
	switch accountKind {
	case models.AccountKindOrganization:
		return planType == models.OrgPlanTypeLimited
	case models.AccountKindRemoteRealm:
		return planType == models.RemoteRealmPlanTypeSelfHosted
	case models.AccountKindRemoteServer:
		return planType == models.RemoteServerPlanTypeSelfHosted
	default:
		return false
	}
}

// IsPaidTier reports whether the plan type requires payment.
func IsPaidTier(accountKind string, planType int) bool {
	switch accountKind {
	case models.AccountKindOrganization:
		return planType == models.OrgPlanTypeStandard || planType == models.OrgPlanTypePlus
	case models.AccountKindRemoteRealm:
		return planType == models.RemoteRealmPlanTypeBasic || planType == models.RemoteRealmPlanTypeBusiness
	case models.AccountKindRemoteServer:
		return planType == models.RemoteServerPlanTypeBasic || planType == models.RemoteServerPlanTypeBusiness
	default:
		return false
	}
}

// PlanTypeName returns the display name of a plan type for the given
// account kind.
func PlanTypeName(accountKind string, planType int) string {
	switch accountKind {
	case models.AccountKindOrganization:
		return models.OrgPlanTypeName(planType)
	case models.AccountKindRemoteRealm:
		return models.RemoteRealmPlanTypeName(planType)
	case models.AccountKindRemoteServer:
		return models.RemoteServerPlanTypeName(planType)
	default:
		return "unknown"
	}
}
