package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
)

// SettingsHandler handles the marketplace settings document
type SettingsHandler struct {
	settingsUsecase *usecases.SettingsUsecase
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUsecase *usecases.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase}
}

// Get returns the settings document, seeding defaults on first read
// GET /api/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsUsecase.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

// Patch applies the provided slots to the document and returns the result
// PATCH /api/admin/settings
func (h *SettingsHandler) Patch(c *gin.Context) {
	var patch entities.AppSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	settings, err := h.settingsUsecase.Patch(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}
