package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Put("/:id", handler.UpdateCycle)
	cycles.Delete("/:id", handler.DeleteCycle)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.ListHealthLogs)
	logs.Put("/:date", handler.UpsertHealthLog)
	logs.Delete("/:date", handler.DeleteHealthLog)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("", handler.GetInsights)
	insights.Get("/future", handler.GetFuturePeriods)

	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)

	chatGroup := api.Group("/chat", handler.AuthRequired)
	chatGroup.Post("", handler.PostChat)
	chatGroup.Get("/history", handler.GetChatHistory)
}
