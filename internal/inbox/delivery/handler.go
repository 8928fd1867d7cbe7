package delivery

import (
	"errors"
	"net/http"

	"snowmail-backend/internal/inbox/domain"
	"snowmail-backend/internal/inbox/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SyncHandler struct {
	syncUsecase usecase.SyncUsecase
}

func NewSyncHandler(syncUsecase usecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{
		syncUsecase: syncUsecase,
	}
}

func (h *SyncHandler) Sync(c *gin.Context) {
	userID := c.GetString("userID")

	emails, err := h.syncUsecase.Sync(c.Request.Context(), userID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrMailboxNotLinked):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrMailboxAuth):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, domain.ErrMailboxConnection):
			status = http.StatusBadGateway
		case errors.Is(err, domain.ErrSyncInProgress):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

type confirmStatusRequest struct {
	AppID       string   `json:"app_id" binding:"required"`
	StatusID    int      `json:"status_id" binding:"required"`
	Attachments []string `json:"attachments"`
}

func (h *SyncHandler) ConfirmStatus(c *gin.Context) {
	userID := c.GetString("userID")

	var req confirmStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.syncUsecase.ConfirmStatus(c.Request.Context(), userID, req.AppID, req.StatusID, req.Attachments); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status confirmed"})
}

type discardEmailRequest struct {
	Attachments []string `json:"attachments"`
}

func (h *SyncHandler) DiscardEmail(c *gin.Context) {
	userID := c.GetString("userID")

	var req discardEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.syncUsecase.DiscardEmail(c.Request.Context(), userID, req.Attachments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email discarded"})
}

func (h *SyncHandler) CompleteSync(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.syncUsecase.CompleteSync(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sync completed"})
}
