package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
)

// UserHandler handles admin identity endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// List returns identities filtered by role, status and search
// GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	filter := entities.UserFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	users, err := h.userUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// Get returns one identity
// GET /api/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

type userStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus activates or suspends an identity
// PATCH /api/admin/users/:id/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.userUsecase.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Status updated")
}

// SetKYC records an identity KYC outcome
// PATCH /api/admin/users/:id/kyc
func (h *UserHandler) SetKYC(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.userUsecase.SetKYC(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "KYC updated")
}
