package billing

// StateKind enumerates the terminal outcomes of billing page resolution.
type StateKind int

const (
	StateNoAccess StateKind = iota
	StateRedirectSponsorship
	StateRedirectPlans
	StateRedirectUpgrade
	StateShowBillingPage
)

// BillingState is the routing decision for one account: either a
// redirect (with its concrete target), a no-access terminal, or the
// billing page with its rendering context. SponsorshipPending is set
// when a paid account has a sponsorship request awaiting approval and
// must be surfaced on the page rather than redirected.
type BillingState struct {
	Kind               StateKind
	RedirectURL        string
	SponsorshipPending bool
	Context            map[string]interface{}
}

// Resolve computes where the caller should be routed for the given
// account. The step order below is a hard invariant shared by all three
// account kinds; earlier steps always win when conditions overlap:
//
//  1. no billing access
//  2. community/limited-free tier -> sponsorship page
//  3. pending sponsorship: redirect unless on a paid plan, in which
//     case resolution continues with the pending flag set
//  4. self-hosted/limited tier -> plans page
//  5. no customer -> upgrade page
//  6. customer without any plan row -> upgrade page
//  7. billing page
//
// Resolve is read-only; it never mutates billing state.
func Resolve(s Session) (BillingState, error) {
	if !s.HasBillingAccess() {
		return BillingState{Kind: StateNoAccess}, nil
	}

	if s.OnSponsorshipTier() {
		return BillingState{
			Kind:        StateRedirectSponsorship,
			RedirectURL: s.RedirectTarget(PageSponsorship),
		}, nil
	}

	customer, err := s.GetCustomer()
	if err != nil {
		return BillingState{}, wrapPersistence("look up customer", err)
	}

	sponsorshipPending := false
	if customer != nil && customer.SponsorshipPending {
		paid, err := s.OnPaidPlan()
		if err != nil {
			return BillingState{}, wrapPersistence("check paid plan", err)
		}
		// Accounts already paying keep their billing page and just see
		// the pending notice; everyone else goes to the sponsorship page.
		if !paid {
			return BillingState{
				Kind:        StateRedirectSponsorship,
				RedirectURL: s.RedirectTarget(PageSponsorship),
			}, nil
		}
		sponsorshipPending = true
	}

	if s.OnPlansPageTier() {
		return BillingState{
			Kind:        StateRedirectPlans,
			RedirectURL: s.RedirectTarget(PagePlans),
		}, nil
	}

	if customer == nil {
		return BillingState{
			Kind:        StateRedirectUpgrade,
			RedirectURL: s.RedirectTarget(PageUpgrade),
		}, nil
	}

	hasPlans, err := s.HasPlanHistory(customer)
	if err != nil {
		return BillingState{}, wrapPersistence("check plan history", err)
	}
	if !hasPlans {
		return BillingState{
			Kind:        StateRedirectUpgrade,
			RedirectURL: s.RedirectTarget(PageUpgrade),
		}, nil
	}

	ctx, err := s.BillingPageContext()
	if err != nil {
		return BillingState{}, wrapPersistence("build billing page context", err)
	}
	return BillingState{
		Kind:               StateShowBillingPage,
		SponsorshipPending: sponsorshipPending,
		Context:            ctx,
	}, nil
}
