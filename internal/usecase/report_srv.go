package usecase

import (
	"context"
	"fmt"

	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService is the read-only reporting facade. It relies on the
// lifecycle invariants (spot status always matches active bookings) and
// derives every figure from live rows on each read.
type ReportService interface {
	UserSummary(ctx context.Context, userID uuid.UUID) (*response.UserSummaryResponse, error)
	RevenueByLot(ctx context.Context) ([]response.LotRevenueResponse, error)
	RevenueByDay(ctx context.Context) ([]response.DayRevenueResponse, error)
	Occupancy(ctx context.Context) ([]response.LotOccupancyResponse, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

func (s *reportService) UserSummary(ctx context.Context, userID uuid.UUID) (*response.UserSummaryResponse, error) {
	summary, err := s.repo.Report.UserSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user summary: %w", err)
	}

	days, err := s.repo.Report.UserDailySpend(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user daily spend: %w", err)
	}

	dailySpend := make([]response.DailySpendResponse, len(days))
	for i, day := range days {
		dailySpend[i] = response.DailySpendResponse{
			Date:       day.Date,
			TotalHours: day.TotalHours,
			TotalCost:  day.TotalCost,
		}
	}

	return &response.UserSummaryResponse{
		TotalHours: summary.TotalHours,
		TotalCost:  summary.TotalCost,
		DailySpend: dailySpend,
	}, nil
}

func (s *reportService) RevenueByLot(ctx context.Context) ([]response.LotRevenueResponse, error) {
	revenues, err := s.repo.Report.RevenueByLot(ctx)
	if err != nil {
		return nil, fmt.Errorf("revenue by lot: %w", err)
	}

	result := make([]response.LotRevenueResponse, len(revenues))
	for i, rev := range revenues {
		result[i] = response.LotRevenueResponse{
			LotID:   rev.LotID.String(),
			LotName: rev.LotName,
			Revenue: rev.Revenue,
		}
	}
	return result, nil
}

func (s *reportService) RevenueByDay(ctx context.Context) ([]response.DayRevenueResponse, error) {
	revenues, err := s.repo.Report.RevenueByDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}

	result := make([]response.DayRevenueResponse, len(revenues))
	for i, rev := range revenues {
		result[i] = response.DayRevenueResponse{
			Date:    rev.Date,
			Revenue: rev.Revenue,
		}
	}
	return result, nil
}

func (s *reportService) Occupancy(ctx context.Context) ([]response.LotOccupancyResponse, error) {
	lots, err := s.repo.Report.Occupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("occupancy: %w", err)
	}

	result := make([]response.LotOccupancyResponse, len(lots))
	for i, lot := range lots {
		result[i] = response.LotOccupancyResponse{
			LotID:      lot.LotID.String(),
			LotName:    lot.LotName,
			TotalSlots: lot.TotalSlots,
			Available:  lot.Available,
			Occupied:   lot.Occupied,
		}
	}
	return result, nil
}
