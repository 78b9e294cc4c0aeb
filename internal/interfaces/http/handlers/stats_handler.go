package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
)

// StatsHandler handles admin dashboard counters
type StatsHandler struct {
	statsUsecase *usecases.StatsUsecase
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsUsecase *usecases.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase}
}

// Dashboard returns headline counts for the admin home screen
// GET /api/admin/stats/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsUsecase.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
