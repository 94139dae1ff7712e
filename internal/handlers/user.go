package handlers

import (
	"net/http"

	"github.com/ManishJoc14/note-library/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" example:"Manish Joshi"`
	Grade    string `json:"grade" example:"12"`
	Phone    string `json:"phone" example:"9800000000"`
}

// Me godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.GetUint("user_id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} User
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(c.GetUint("user_id"), req.FullName, req.Grade, req.Phone)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListStudents godoc
// @Summary      List student accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} User
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/users/students [get]
func (h *UserHandler) ListStudents(c *gin.Context) {
	users, err := h.authService.ListStudents()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
