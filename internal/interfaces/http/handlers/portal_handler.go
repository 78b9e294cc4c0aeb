package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/middleware"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
	"quickbite.backend/pkg/storage"
)

// PortalHandler handles the merchant self-service endpoints. The profile is
// resolved through the authenticated identity, never a client-supplied id.
type PortalHandler struct {
	merchantUsecase *usecases.MerchantUsecase
	uploads         *storage.Store
}

// NewPortalHandler creates a new merchant portal handler
func NewPortalHandler(merchantUsecase *usecases.MerchantUsecase, uploads *storage.Store) *PortalHandler {
	return &PortalHandler{
		merchantUsecase: merchantUsecase,
		uploads:         uploads,
	}
}

// Profile returns the caller's merchant profile
// GET /api/merchant/profile
func (h *PortalHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	merchant, err := h.merchantUsecase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}

type setOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

// SetOpen toggles the storefront open flag
// PATCH /api/merchant/open
func (h *PortalHandler) SetOpen(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var req setOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.merchantUsecase.SetOpen(c.Request.Context(), userID, req.IsOpen); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Store availability updated")
}

// UploadProfileImage stores a new storefront image and records its path
// POST /api/merchant/profile-image
func (h *PortalHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, domainerrors.Validation("Image file is required"))
		return
	}
	if !h.uploads.Allowed(storage.KindMerchantImage, file.Filename) {
		response.Error(c, domainerrors.Validation("Only jpg, jpeg and png images are accepted"))
		return
	}

	relative := h.uploads.RelativePath(storage.KindMerchantImage, file.Filename)
	diskPath := h.uploads.DiskPath(relative)
	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		response.Error(c, domainerrors.Internal(err))
		return
	}
	if err := c.SaveUploadedFile(file, diskPath); err != nil {
		response.Error(c, domainerrors.Internal(err))
		return
	}

	if err := h.merchantUsecase.SetProfileImage(c.Request.Context(), userID, relative); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"path": relative,
		"url":  h.uploads.PublicURL(relative),
	})
}
