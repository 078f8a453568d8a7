package entitlements

import (
	"testing"

	"github.com/corvidchat/corvid/app/models"
)

func TestIsSponsorshipTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     string
		planType int
		want     bool
	}{
		{models.AccountKindOrganization, models.OrgPlanTypeStandardFree, true},
		{models.AccountKindOrganization, models.OrgPlanTypeStandard, false},
		{models.AccountKindOrganization, models.OrgPlanTypeLimited, false},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeCommunity, true},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeBusiness, false},
		{models.AccountKindRemoteServer, models.RemoteServerPlanTypeCommunity, true},
		{models.AccountKindRemoteServer, models.RemoteServerPlanTypeSelfHosted, false},
		{"unknown", 1, false},
	}

	for _, tc := range cases {
		if got := IsSponsorshipTier(tc.kind, tc.planType); got != tc.want {
			t.Errorf("IsSponsorshipTier(%q, %d) = %v, want %v", tc.kind, tc.planType, got, tc.want)
		}
	}
}

func TestIsPlansPageTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     string
		planType int
		want     bool
	}{
		{models.AccountKindOrganization, models.OrgPlanTypeLimited, true},
		{models.AccountKindOrganization, models.OrgPlanTypeStandardFree, false},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeSelfHosted, true},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeBasic, false},
		{models.AccountKindRemoteServer, models.RemoteServerPlanTypeSelfHosted, true},
		{"unknown", 2, false},
	}

	for _, tc := range cases {
		if got := IsPlansPageTier(tc.kind, tc.planType); got != tc.want {
			t.Errorf("IsPlansPageTier(%q, %d) = %v, want %v", tc.kind, tc.planType, got, tc.want)
		}
	}
}

func TestIsPaidTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     string
		planType int
		want     bool
	}{
		{models.AccountKindOrganization, models.OrgPlanTypeStandard, true},
		{models.AccountKindOrganization, models.OrgPlanTypePlus, true},
		{models.AccountKindOrganization, models.OrgPlanTypeLimited, false},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeBasic, true},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeBusiness, true},
		{models.AccountKindRemoteRealm, models.RemoteRealmPlanTypeCommunity, false},
		{models.AccountKindRemoteServer, models.RemoteServerPlanTypeBusiness, true},
		{models.AccountKindRemoteServer, models.RemoteServerPlanTypeSelfHosted, false},
	}

	for _, tc := range cases {
		if got := IsPaidTier(tc.kind, tc.planType); got != tc.want {
			t.Errorf("IsPaidTier(%q, %d) = %v, want %v", tc.kind, tc.planType, got, tc.want)
		}
	}
}

func TestPlanTypeNameUnknownKind(t *testing.T) {
	t.Parallel()

	if got := PlanTypeName("something", 1); got != "unknown" {
		t.Errorf("PlanTypeName = %q, want %q", got, "unknown")
	}
}
