package handlers

import (
	"net/http"

	"github.com/ManishJoc14/note-library/internal/services"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	authService     *services.AuthService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService, authService *services.AuthService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, authService: authService}
}

type FeedbackRequest struct {
	Message string `json:"message" binding:"required,min=1" example:"The physics notes were really helpful!"`
}

// Create godoc
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body FeedbackRequest true "Feedback"
// @Success      201 {object} Feedback
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.GetUser(c.GetUint("user_id"))
	if err != nil {
		abortWith(c, err)
		return
	}

	fb, err := h.feedbackService.Create(user.ID, user.FullName, req.Message)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// List godoc
// @Summary      List all feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Feedback
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.feedbackService.List()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}
