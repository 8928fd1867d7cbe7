package delivery

import (
	"errors"
	"net/http"

	inboxdomain "snowmail-backend/internal/inbox/domain"
	"snowmail-backend/internal/outreach/domain"
	"snowmail-backend/internal/outreach/usecase"

	"github.com/gin-gonic/gin"
)

type OutreachHandler struct {
	outreachUsecase usecase.OutreachUsecase
}

func NewOutreachHandler(outreachUsecase usecase.OutreachUsecase) *OutreachHandler {
	return &OutreachHandler{
		outreachUsecase: outreachUsecase,
	}
}

func (h *OutreachHandler) GenerateEmail(c *gin.Context) {
	var req domain.GenerateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.outreachUsecase.GenerateEmail(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email})
}

func (h *OutreachHandler) SendEmail(c *gin.Context) {
	userID := c.GetString("userID")

	var req domain.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.outreachUsecase.SendEmail(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, inboxdomain.ErrMailboxNotLinked) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}
