package router

import (
	"strings"
	"time"

	"github.com/corvidchat/corvid/app/controllers"
	"github.com/corvidchat/corvid/internal/pkg/env"
	"github.com/corvidchat/corvid/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)

	// Billing pages for cloud organizations
	group.Get("/billing", middleware.RequireAuth, controllers.HandleBillingPage)
	group.Get("/billing/upgrade", middleware.RequireAuth, controllers.HandleUpgradePage)
	group.Get("/billing/sponsorship", middleware.RequireAuth, controllers.HandleSponsorshipPage)
	group.Post("/billing/sponsorship", middleware.RequireAuth, controllers.HandleRequestSponsorship)
}
