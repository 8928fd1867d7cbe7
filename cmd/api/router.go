package api

import (
	"net/http"

	appDelivery "snowmail-backend/internal/application/delivery"
	appUsecase "snowmail-backend/internal/application/usecase"
	authDelivery "snowmail-backend/internal/auth/delivery"
	inboxDelivery "snowmail-backend/internal/inbox/delivery"
	inboxUsecase "snowmail-backend/internal/inbox/usecase"
	outreachDelivery "snowmail-backend/internal/outreach/delivery"
	outreachUsecase "snowmail-backend/internal/outreach/usecase"
	"snowmail-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, progressUc appUsecase.ProgressUsecase, syncUc inboxUsecase.SyncUsecase, outreachUc outreachUsecase.OutreachUsecase, cfg *config.Config) {
	progressHandler := appDelivery.NewProgressHandler(progressUc)
	syncHandler := inboxDelivery.NewSyncHandler(syncUc)
	outreachHandler := outreachDelivery.NewOutreachHandler(outreachUc)
	authRequired := authDelivery.AuthMiddleware(cfg.JWTSecret)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Profile routes (protected) - mailbox credential linking
		profile := api.Group("/profile")
		profile.Use(authRequired)
		{
			profile.POST("/mailbox", progressHandler.LinkMailbox)
		}

		// Progress routes (protected)
		progress := api.Group("/progress")
		progress.Use(authRequired)
		{
			progress.GET("", progressHandler.GetProgress)
		}

		// Application routes (protected)
		applications := api.Group("/applications")
		applications.Use(authRequired)
		{
			applications.GET("", progressHandler.ListJobs)
			applications.PATCH("/:id/status", progressHandler.UpdateStatus)
		}

		// Inbox sync routes (protected)
		inbox := api.Group("/inbox")
		inbox.Use(authRequired)
		{
			inbox.POST("/sync", syncHandler.Sync)
			inbox.POST("/confirm", syncHandler.ConfirmStatus)
			inbox.POST("/discard", syncHandler.DiscardEmail)
			inbox.POST("/complete", syncHandler.CompleteSync)
		}

		// Outreach routes (protected) - email drafting and sending
		outreach := api.Group("/outreach")
		outreach.Use(authRequired)
		{
			outreach.POST("/generate", outreachHandler.GenerateEmail)
			outreach.POST("/send", outreachHandler.SendEmail)
		}

		// Settings routes (public) - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/ollama", GetOllamaSettings)
			settings.PUT("/ollama", UpdateOllamaSettings)
			settings.POST("/ollama/test", TestOllamaConnection)
		}
	}
}
