package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
)

// RiderHandler handles admin rider endpoints. Riders are addressed by
// identity id throughout.
type RiderHandler struct {
	riderUsecase *usecases.RiderUsecase
}

// NewRiderHandler creates a new rider handler
func NewRiderHandler(riderUsecase *usecases.RiderUsecase) *RiderHandler {
	return &RiderHandler{riderUsecase: riderUsecase}
}

// Create onboards a rider identity and profile
// POST /api/admin/riders
func (h *RiderHandler) Create(c *gin.Context) {
	var input entities.RiderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	row, err := h.riderUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, row)
}

// List returns a filtered rider page
// GET /api/admin/riders
func (h *RiderHandler) List(c *gin.Context) {
	filter := entities.RiderFilter{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		KYC:      c.Query("kyc"),
		Approval: c.Query("approval"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}
	switch c.Query("online") {
	case "true":
		filter.Online = null.BoolFrom(true)
	case "false":
		filter.Online = null.BoolFrom(false)
	}

	rows, meta, err := h.riderUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, meta)
}

// Get returns the joined identity+profile row for one rider
// GET /api/admin/riders/:id
func (h *RiderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	row, err := h.riderUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, row)
}

// UpdateProfile patches rider profile fields; absent slots stay untouched
// PATCH /api/admin/riders/:id/profile
func (h *RiderHandler) UpdateProfile(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch entities.RiderProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.riderUsecase.UpdateProfile(c.Request.Context(), id, patch); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Profile updated")
}

// UpdateBank patches rider payout details
// PATCH /api/admin/riders/:id/bank
func (h *RiderHandler) UpdateBank(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch entities.RiderBankPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.riderUsecase.UpdateBank(c.Request.Context(), id, patch); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Bank details updated")
}

type riderOnlineRequest struct {
	Online bool `json:"online"`
}

// SetOnline toggles rider availability
// PATCH /api/admin/riders/:id/online
func (h *RiderHandler) SetOnline(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req riderOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.riderUsecase.SetOnline(c.Request.Context(), id, req.Online); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Online status updated")
}

type riderStatusRequest struct {
	Status string `json:"status"`
}

// SetKYC records a KYC review outcome
// PATCH /api/admin/riders/:id/kyc
func (h *RiderHandler) SetKYC(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req riderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.riderUsecase.SetKYC(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "KYC updated")
}

type riderApprovalRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// SetApproval moves the rider through the approval lifecycle
// PATCH /api/admin/riders/:id/approval
func (h *RiderHandler) SetApproval(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req riderApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.riderUsecase.SetApproval(c.Request.Context(), id, req.Status, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Approval updated")
}

// SetStatus updates the rider's identity status
// PATCH /api/admin/riders/:id/status
func (h *RiderHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req riderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body"))
		return
	}

	if err := h.riderUsecase.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Status updated")
}

// Delete retires a rider: identity goes inactive, profile goes offline
// with approval reset. Rows are kept.
// DELETE /api/admin/riders/:id
func (h *RiderHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.riderUsecase.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Rider deactivated")
}
