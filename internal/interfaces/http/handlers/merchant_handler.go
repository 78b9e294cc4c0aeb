package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
)

// MerchantHandler handles admin merchant endpoints
type MerchantHandler struct {
	merchantUsecase *usecases.MerchantUsecase
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantUsecase *usecases.MerchantUsecase) *MerchantHandler {
	return &MerchantHandler{merchantUsecase: merchantUsecase}
}

// Create onboards a merchant and its identity
// POST /api/admin/merchants
func (h *MerchantHandler) Create(c *gin.Context) {
	var input entities.MerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	merchant, err := h.merchantUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, merchant)
}

// List returns a filtered merchant page
// GET /api/admin/merchants
func (h *MerchantHandler) List(c *gin.Context) {
	filter := entities.MerchantFilter{
		Q:        c.Query("q"),
		City:     c.Query("city"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}

	rows, meta, err := h.merchantUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, meta)
}

// Get returns one merchant by id
// GET /api/admin/merchants/:id
func (h *MerchantHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	merchant, err := h.merchantUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}

// Update replaces a merchant's editable fields
// PUT /api/admin/merchants/:id
func (h *MerchantHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.MerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	merchant, err := h.merchantUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}

type merchantStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus flips the merchant's operational status and propagates it to
// the identity.
// PATCH /api/admin/merchants/:id/status
func (h *MerchantHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req merchantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.merchantUsecase.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Status updated")
}

type merchantApprovalRequest struct {
	Approved bool   `json:"approved"`
	Status   string `json:"status"`
}

// SetApproval stamps or clears the merchant's approval
// PATCH /api/admin/merchants/:id/approval
func (h *MerchantHandler) SetApproval(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req merchantApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.merchantUsecase.SetApproval(c.Request.Context(), id, req.Approved, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Approval updated")
}
