package router

import (
	"github.com/corvidchat/corvid/app/controllers"
	"github.com/corvidchat/corvid/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public plan overview
	app.Get("/plans", loggedInMiddleware, controllers.HandlePlansPage)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Billing pages for self-hosted installations. These carry a shared
	// management token instead of a web session (no CSRF, no cookies).
	app.Get("/realm/:uuid/billing", middleware.RequireRemoteManagementAuth, controllers.HandleRemoteRealmBillingPage)
	app.Get("/server/:uuid/billing", middleware.RequireRemoteManagementAuth, controllers.HandleRemoteServerBillingPage)
}
