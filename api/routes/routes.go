package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/nebula-luck-backend/internal/handlers"
	"github.com/ArowuTest/nebula-luck-backend/internal/middleware"
	"github.com/ArowuTest/nebula-luck-backend/internal/services"
)

// Dependencies are the services behind the HTTP API
type Dependencies struct {
	DrawService     services.DrawService
	SettingsService services.SettingsService
	HistoryService  services.HistoryService
	AuthService     services.AuthService // nil disables authentication
	StoreDriver     string
	AllowedOrigins  []string
}

// SetupRouter sets up the router
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	drawHandler := handlers.NewDrawHandler(deps.DrawService)
	settingsHandler := handlers.NewSettingsHandler(deps.SettingsService)
	historyHandler := handlers.NewHistoryHandler(deps.HistoryService)
	healthHandler := handlers.NewHealthHandler(deps.StoreDriver)

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", healthHandler.Health)

		if deps.AuthService != nil {
			authHandler := handlers.NewAuthHandler(deps.AuthService)
			public.POST("/auth/login", authHandler.Login)
		}

		draw := public.Group("/draw")
		{
			draw.GET("/status", drawHandler.GetStatus)
			draw.POST("/start", drawHandler.Start)
			draw.POST("/stop", drawHandler.Stop)
			draw.POST("/acknowledge", drawHandler.Acknowledge)
			draw.PUT("/prize", drawHandler.SelectPrize)
		}

		public.GET("/settings", settingsHandler.GetSettings)
		public.GET("/prizes", settingsHandler.ListPrizes)
		public.GET("/roster", settingsHandler.GetRoster)
		public.GET("/history", historyHandler.GetHistory)
		public.GET("/history/export", historyHandler.ExportHistory)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	if deps.AuthService != nil {
		protected.Use(middleware.JWTAuthMiddleware(deps.AuthService))
	}
	{
		protected.POST("/draw/reset", drawHandler.Reset)

		protected.PUT("/settings", settingsHandler.UpdateSettings)

		prizes := protected.Group("/prizes")
		{
			prizes.POST("", settingsHandler.CreatePrize)
			prizes.PUT("/:id", settingsHandler.UpdatePrize)
			prizes.DELETE("/:id", settingsHandler.DeletePrize)
		}

		roster := protected.Group("/roster")
		{
			roster.PUT("", settingsHandler.ReplaceRoster)
			roster.DELETE("", settingsHandler.ClearRoster)
			roster.POST("/import", settingsHandler.ImportRoster)
		}

		protected.DELETE("/history", historyHandler.ClearHistory)
	}

	return router
}
