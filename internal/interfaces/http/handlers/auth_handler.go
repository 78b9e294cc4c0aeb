package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
)

// AuthHandler handles OTP login endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// SendOTP issues a login code for the phone
// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	code, err := h.authUsecase.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{"message": "OTP sent"}
	if code != "" {
		// development mode only; production never echoes the code
		data["otp"] = code
	}
	response.Success(c, http.StatusOK, data)
}

// VerifyOTP exchanges a valid code for a signed token
// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	result, err := h.authUsecase.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}
