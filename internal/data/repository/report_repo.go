package repository

import (
	"context"
	"fmt"

	"parking-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reporting rows. Every count and sum here is derived on read from booking
// and spot rows; nothing is served from a maintained counter.

type UserSummary struct {
	TotalHours float64
	TotalCost  float64
}

type DailySpend struct {
	Date       string
	TotalHours float64
	TotalCost  float64
}

type LotRevenue struct {
	LotID   uuid.UUID
	LotName string
	Revenue float64
}

type DayRevenue struct {
	Date    string
	Revenue float64
}

type LotOccupancy struct {
	LotID      uuid.UUID
	LotName    string
	TotalSlots int
	Available  int
	Occupied   int
}

type ReportRepository interface {
	UserSummary(ctx context.Context, userID uuid.UUID) (*UserSummary, error)
	UserDailySpend(ctx context.Context, userID uuid.UUID) ([]*DailySpend, error)
	RevenueByLot(ctx context.Context) ([]*LotRevenue, error)
	RevenueByDay(ctx context.Context) ([]*DayRevenue, error)
	Occupancy(ctx context.Context) ([]*LotOccupancy, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

func (r *reportRepository) UserSummary(ctx context.Context, userID uuid.UUID) (*UserSummary, error) {
	query := `
		SELECT COALESCE(SUM(duration_hours), 0), COALESCE(SUM(cost), 0)
		FROM bookings
		WHERE user_id = $1 AND status = 'completed'
	`

	var summary UserSummary
	if err := r.db.QueryRow(ctx, query, userID).Scan(&summary.TotalHours, &summary.TotalCost); err != nil {
		r.log.Error("Failed to load user summary",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("load summary for user %s: %w", userID.String(), err)
	}

	return &summary, nil
}

func (r *reportRepository) UserDailySpend(ctx context.Context, userID uuid.UUID) ([]*DailySpend, error) {
	query := `
		SELECT TO_CHAR(start_time::date, 'YYYY-MM-DD'),
		       SUM(duration_hours), SUM(cost)
		FROM bookings
		WHERE user_id = $1 AND status = 'completed'
		GROUP BY start_time::date
		ORDER BY start_time::date
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to load daily spend",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("load daily spend for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var days []*DailySpend
	for rows.Next() {
		var day DailySpend
		if err := rows.Scan(&day.Date, &day.TotalHours, &day.TotalCost); err != nil {
			return nil, fmt.Errorf("scan daily spend row: %w", err)
		}
		days = append(days, &day)
	}

	return days, rows.Err()
}

func (r *reportRepository) RevenueByLot(ctx context.Context) ([]*LotRevenue, error) {
	query := `
		SELECT l.id, l.name, COALESCE(SUM(b.cost), 0)
		FROM lots l
		LEFT JOIN bookings b ON b.lot_id = l.id AND b.status = 'completed'
		GROUP BY l.id, l.name
		ORDER BY l.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load revenue by lot", zap.Error(err))
		return nil, fmt.Errorf("load revenue by lot: %w", err)
	}
	defer rows.Close()

	var revenues []*LotRevenue
	for rows.Next() {
		var rev LotRevenue
		if err := rows.Scan(&rev.LotID, &rev.LotName, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("scan lot revenue row: %w", err)
		}
		revenues = append(revenues, &rev)
	}

	return revenues, rows.Err()
}

func (r *reportRepository) RevenueByDay(ctx context.Context) ([]*DayRevenue, error) {
	query := `
		SELECT TO_CHAR(end_time::date, 'YYYY-MM-DD'), SUM(cost)
		FROM bookings
		WHERE status = 'completed'
		GROUP BY end_time::date
		ORDER BY end_time::date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load revenue by day", zap.Error(err))
		return nil, fmt.Errorf("load revenue by day: %w", err)
	}
	defer rows.Close()

	var revenues []*DayRevenue
	for rows.Next() {
		var rev DayRevenue
		if err := rows.Scan(&rev.Date, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("scan day revenue row: %w", err)
		}
		revenues = append(revenues, &rev)
	}

	return revenues, rows.Err()
}

func (r *reportRepository) Occupancy(ctx context.Context) ([]*LotOccupancy, error) {
	query := `
		SELECT l.id, l.name, l.total_slots,
		       COUNT(s.id) FILTER (WHERE s.status = 'available'),
		       COUNT(s.id) FILTER (WHERE s.status = 'occupied')
		FROM lots l
		LEFT JOIN spots s ON s.lot_id = l.id
		GROUP BY l.id, l.name, l.total_slots
		ORDER BY l.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load occupancy", zap.Error(err))
		return nil, fmt.Errorf("load occupancy: %w", err)
	}
	defer rows.Close()

	var lots []*LotOccupancy
	for rows.Next() {
		var lot LotOccupancy
		if err := rows.Scan(&lot.LotID, &lot.LotName, &lot.TotalSlots, &lot.Available, &lot.Occupied); err != nil {
			return nil, fmt.Errorf("scan occupancy row: %w", err)
		}
		lots = append(lots, &lot)
	}

	return lots, rows.Err()
}
