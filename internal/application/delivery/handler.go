package delivery

import (
	"errors"
	"net/http"

	"snowmail-backend/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProgressHandler struct {
	progressUsecase usecase.ProgressUsecase
}

func NewProgressHandler(progressUsecase usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{
		progressUsecase: progressUsecase,
	}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID := c.GetString("userID")

	progress, err := h.progressUsecase.GetProgress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *ProgressHandler) ListJobs(c *gin.Context) {
	userID := c.GetString("userID")

	jobs, err := h.progressUsecase.ListJobs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

type updateStatusRequest struct {
	StatusID int `json:"status_id" binding:"required"`
}

func (h *ProgressHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString("userID")
	appID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.progressUsecase.ApplyStatus(userID, appID, req.StatusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

type linkMailboxRequest struct {
	Account     string `json:"account" binding:"required,email"`
	AppPassword string `json:"app_password" binding:"required"`
}

func (h *ProgressHandler) LinkMailbox(c *gin.Context) {
	userID := c.GetString("userID")

	var req linkMailboxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.progressUsecase.LinkMailbox(userID, req.Account, req.AppPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "mailbox linked"})
}
