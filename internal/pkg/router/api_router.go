package router

import (
	"github.com/corvidchat/corvid/app/controllers"
	"github.com/corvidchat/corvid/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Plan management for cloud organizations (session auth)
	v1.Patch("/billing/plan", middleware.RequireAPISessionAuth, controllers.HandleUpdatePlan)
	v1.Post("/billing/plan/cancel", middleware.RequireAPISessionAuth, controllers.HandleCancelPlan)

	// Plan management for self-hosted installations (management token auth)
	remote := v1.Group("", middleware.RequireRemoteManagementAuth)
	remote.Patch("/realm/:uuid/billing/plan", controllers.HandleUpdatePlanForRemoteRealm)
	remote.Post("/realm/:uuid/billing/plan/cancel", controllers.HandleCancelPlanForRemoteRealm)
	remote.Patch("/server/:uuid/billing/plan", controllers.HandleUpdatePlanForRemoteServer)
	remote.Post("/server/:uuid/billing/plan/cancel", controllers.HandleCancelPlanForRemoteServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
