package router

import (
	"github.com/corvidchat/corvid/internal/pkg/middleware"
	"github.com/corvidchat/corvid/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	// This middleware now just passes through - no additional logic needed
	// All user information is available via usercontext.GetUserContext(c)
	return c.Next()
}

// Auth middlewares moved to internal/pkg/middleware/auth.go
