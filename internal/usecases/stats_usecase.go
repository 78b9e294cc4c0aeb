package usecases

import (
	"context"

	"quickbite.backend/internal/domain/entities"
	"quickbite.backend/internal/domain/repositories"
)

// DashboardStats holds the admin dashboard counters
type DashboardStats struct {
	ActiveMerchants int64 `json:"active_merchants"`
	TotalRiders     int64 `json:"total_riders"`
}

// StatsUsecase aggregates counters for the admin dashboard
type StatsUsecase struct {
	merchantRepo repositories.MerchantRepository
	riderRepo    repositories.RiderRepository
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(
	merchantRepo repositories.MerchantRepository,
	riderRepo repositories.RiderRepository,
) *StatsUsecase {
	return &StatsUsecase{
		merchantRepo: merchantRepo,
		riderRepo:    riderRepo,
	}
}

// Dashboard returns the current marketplace counters
func (u *StatsUsecase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	merchants, err := u.merchantRepo.CountByStatus(ctx, entities.MerchantStatusActive)
	if err != nil {
		return nil, err
	}
	riders, err := u.riderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		ActiveMerchants: merchants,
		TotalRiders:     riders,
	}, nil
}
