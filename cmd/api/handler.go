package api

import (
	appUsecase "snowmail-backend/internal/application/usecase"
	inboxUsecase "snowmail-backend/internal/inbox/usecase"
	outreachUsecase "snowmail-backend/internal/outreach/usecase"
	"snowmail-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	progressUsecase appUsecase.ProgressUsecase
	syncUsecase     inboxUsecase.SyncUsecase
	outreachUsecase outreachUsecase.OutreachUsecase
	config          *config.Config
}

func NewHandler(progressUc appUsecase.ProgressUsecase, syncUc inboxUsecase.SyncUsecase, outreachUc outreachUsecase.OutreachUsecase, cfg *config.Config) *Handler {
	return &Handler{
		progressUsecase: progressUc,
		syncUsecase:     syncUc,
		outreachUsecase: outreachUc,
		config:          cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.progressUsecase, h.syncUsecase, h.outreachUsecase, h.config)

	return r.Run(addr)
}
