package handlers

import (
	"errors"
	"net/http"

	"github.com/ManishJoc14/note-library/internal/models"
	"github.com/ManishJoc14/note-library/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Quiz = models.Quiz
type Note = models.Note
type QuizSummary = models.QuizSummary
type User = models.User
type Feedback = models.Feedback

// serviceStatus maps service-layer sentinels onto HTTP codes so every
// handler reports the taxonomy the same way.
func serviceStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(serviceStatus(err), ErrorResponse{Error: err.Error()})
}
