package controllers

import (
	"errors"
	"fmt"

	"github.com/corvidchat/corvid/app/models"
	"github.com/corvidchat/corvid/app/repository"
	"github.com/corvidchat/corvid/internal/pkg/billing"
	"github.com/corvidchat/corvid/internal/pkg/constants"
	"github.com/corvidchat/corvid/internal/pkg/entitlements"
	"github.com/corvidchat/corvid/internal/pkg/mail"
	"github.com/corvidchat/corvid/internal/pkg/usercontext"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"
)

var updatePlanValidator = validator.New()

// updatePlanParams is the wire shape of the update-plan API. The
// validate tags pin the closed input domains: the seven settable plan
// statuses, non-negative license counts and the two billing schedules.
// Values outside these domains never reach the billing engine.
type updatePlanParams struct {
	Status                *int `json:"status" validate:"omitempty,oneof=1 2 3 4 5 6 7"`
	Licenses              *int `json:"licenses" validate:"omitempty,min=0"`
	LicensesAtNextRenewal *int `json:"licenses_at_next_renewal" validate:"omitempty,min=0"`
	Schedule              *int `json:"schedule" validate:"omitempty,oneof=1 2"`
}

func validateUpdatePlanParams(params *updatePlanParams) error {
	if err := updatePlanValidator.Struct(params); err != nil {
		return err
	}
	// Guard against the oneof tag and the allowed set drifting apart.
	if params.Status != nil && !models.IsAllowedPlanAPIStatus(*params.Status) {
		return fmt.Errorf("status %d is not settable via the API", *params.Status)
	}
	return nil
}

// organizationBillingSession builds the billing session for the logged
// in user's organization, threading the user through as acting
// principal so plan mutations stay attributable.
func organizationBillingSession(c *fiber.Ctx) (*billing.OrganizationBillingSession, error) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "login required")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return nil, err
	}
	org, err := repos.Organization.GetByID(user.OrganizationID)
	if err != nil {
		return nil, err
	}
	return billing.NewOrganizationBillingSession(org, user, repos), nil
}

// remoteRealmBillingSession resolves the :uuid route param to a remote
// realm session. Remote management requests carry no local user, so the
// acting principal is nil and audit entries are marked degraded.
func remoteRealmBillingSession(c *fiber.Ctx) (*billing.RemoteRealmBillingSession, error) {
	realmUUID := c.Params("uuid")
	if _, err := uuid.Parse(realmUUID); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid realm uuid")
	}
	repos := repository.GetGlobalRepositories()
	realm, err := repos.RemoteRealm.GetByUUID(realmUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "remote realm not found")
		}
		return nil, err
	}
	return billing.NewRemoteRealmBillingSession(realm, nil, repos), nil
}

func remoteServerBillingSession(c *fiber.Ctx) (*billing.RemoteServerBillingSession, error) {
	serverUUID := c.Params("uuid")
	if _, err := uuid.Parse(serverUUID); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid server uuid")
	}
	repos := repository.GetGlobalRepositories()
	server, err := repos.RemoteServer.GetByUUID(serverUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "remote server not found")
		}
		return nil, err
	}
	return billing.NewRemoteServerBillingSession(server, nil, repos), nil
}

func sessionError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": "request_failed", "message": fiberErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Abrechnungskonto konnte nicht geladen werden"})
}

// respondWithBillingState turns a resolver decision into the HTTP
// response: redirect, no-access error or the billing page context.
func respondWithBillingState(c *fiber.Ctx, s billing.Session) error {
	state, err := billing.Resolve(s)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Abrechnungsstatus konnte nicht ermittelt werden"})
	}

	switch state.Kind {
	case billing.StateNoAccess:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "no_billing_access", "message": "Kein Zugriff auf die Abrechnung dieses Kontos"})
	case billing.StateRedirectSponsorship, billing.StateRedirectPlans, billing.StateRedirectUpgrade:
		return c.Redirect(state.RedirectURL, fiber.StatusSeeOther)
	default:
		pageCtx := state.Context
		if pageCtx == nil {
			pageCtx = map[string]interface{}{}
		}
		pageCtx["sponsorship_pending"] = state.SponsorshipPending
		if fm := flash.Get(c); fm != nil {
			if msg, ok := fm["message"].(string); ok && fm["type"] == "success" {
				pageCtx["success_message"] = msg
			}
		}
		return c.JSON(pageCtx)
	}
}

// HandleBillingPage - GET /billing
func HandleBillingPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	s, err := organizationBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return respondWithBillingState(c, s)
}

// HandleRemoteRealmBillingPage - GET /realm/:uuid/billing
func HandleRemoteRealmBillingPage(c *fiber.Ctx) error {
	s, err := remoteRealmBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return respondWithBillingState(c, s)
}

// HandleRemoteServerBillingPage - GET /server/:uuid/billing
func HandleRemoteServerBillingPage(c *fiber.Ctx) error {
	s, err := remoteServerBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return respondWithBillingState(c, s)
}

func handleUpdatePlan(c *fiber.Ctx, s billing.Session) error {
	if !s.HasBillingAccess() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "no_billing_access", "message": "Kein Zugriff auf die Abrechnung dieses Kontos"})
	}

	params := new(updatePlanParams)
	if err := c.BodyParser(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Request-Body konnte nicht gelesen werden"})
	}
	if err := validateUpdatePlanParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
	}

	req := &billing.UpdatePlanRequest{
		Status:                params.Status,
		Licenses:              params.Licenses,
		LicensesAtNextRenewal: params.LicensesAtNextRenewal,
		Schedule:              params.Schedule,
	}
	if err := s.DoUpdatePlan(req); err != nil {
		return planUpdateErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"result": "success"})
}

func planUpdateErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, billing.ErrNoActivePlan):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no_active_plan", "message": err.Error()})
	case errors.Is(err, billing.ErrIllegalTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "illegal_transition", "message": err.Error()})
	case errors.Is(err, billing.ErrInvalidLicenseCount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_license_count", "message": err.Error()})
	case errors.Is(err, billing.ErrConflictingUpdate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "conflicting_update", "message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Planänderung konnte nicht gespeichert werden"})
	}
}

// HandleUpdatePlan - PATCH /api/v1/billing/plan
func HandleUpdatePlan(c *fiber.Ctx) error {
	s, err := organizationBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return handleUpdatePlan(c, s)
}

// HandleUpdatePlanForRemoteRealm - PATCH /api/v1/realm/:uuid/billing/plan
func HandleUpdatePlanForRemoteRealm(c *fiber.Ctx) error {
	s, err := remoteRealmBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return handleUpdatePlan(c, s)
}

// HandleUpdatePlanForRemoteServer - PATCH /api/v1/server/:uuid/billing/plan
func HandleUpdatePlanForRemoteServer(c *fiber.Ctx) error {
	s, err := remoteServerBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return handleUpdatePlan(c, s)
}

func handleCancelPlan(c *fiber.Ctx, s billing.Session) error {
	if !s.HasBillingAccess() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "no_billing_access", "message": "Kein Zugriff auf die Abrechnung dieses Kontos"})
	}
	if err := s.DoCancel(); err != nil {
		return planUpdateErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"result": "success"})
}

// HandleCancelPlan - POST /api/v1/billing/plan/cancel
func HandleCancelPlan(c *fiber.Ctx) error {
	s, err := organizationBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return handleCancelPlan(c, s)
}

// HandleCancelPlanForRemoteRealm - POST /api/v1/realm/:uuid/billing/plan/cancel
func HandleCancelPlanForRemoteRealm(c *fiber.Ctx) error {
	s, err := remoteRealmBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return handleCancelPlan(c, s)
}

// HandleCancelPlanForRemoteServer - POST /api/v1/server/:uuid/billing/plan/cancel
func HandleCancelPlanForRemoteServer(c *fiber.Ctx) error {
	s, err := remoteServerBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return handleCancelPlan(c, s)
}

// HandleRequestSponsorship - POST /billing/sponsorship
func HandleRequestSponsorship(c *fiber.Ctx) error {
	s, err := organizationBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	if !s.HasBillingAccess() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "no_billing_access", "message": "Kein Zugriff auf die Abrechnung dieses Kontos"})
	}
	if err := s.RequestSponsorship(); err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Sponsoring-Anfrage konnte nicht gespeichert werden"}).Redirect(constants.SponsorshipRoute)
	}

	// Notify sales asynchronously; the request itself already succeeded.
	go mail.SendSponsorshipRequestNotification(s.AccountName())

	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Sponsoring-Anfrage wurde übermittelt"}).Redirect(constants.BillingRoute)
}

// HandleSponsorshipPage - GET /billing/sponsorship
func HandleSponsorshipPage(c *fiber.Ctx) error {
	s, err := organizationBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	customer, err := s.GetCustomer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Kundendaten konnten nicht geladen werden"})
	}
	pending := customer != nil && customer.SponsorshipPending
	pageCtx := fiber.Map{
		"org_name":            s.AccountName(),
		"sponsorship_pending": pending,
	}
	if fm := flash.Get(c); fm != nil {
		if msg, ok := fm["message"].(string); ok && fm["type"] == "success" {
			pageCtx["success_message"] = msg
		}
	}
	return c.JSON(pageCtx)
}

// HandlePlansPage - GET /plans
func HandlePlansPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	pageCtx := fiber.Map{"page": "plans"}
	if userCtx.IsLoggedIn {
		repos := repository.GetGlobalRepositories()
		if user, err := repos.User.GetByID(userCtx.UserID); err == nil {
			if org, err := repos.Organization.GetByID(user.OrganizationID); err == nil {
				pageCtx["org_name"] = org.Name
				pageCtx["plan_type"] = entitlements.PlanTypeName(models.AccountKindOrganization, org.PlanType)
			}
		}
	}
	return c.JSON(pageCtx)
}

// HandleUpgradePage - GET /billing/upgrade
func HandleUpgradePage(c *fiber.Ctx) error {
	s, err := organizationBillingSession(c)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "upgrade",
		"org_name": s.AccountName(),
	})
}
