package repository

import (
	"context"
	"fmt"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingWithPlace is a booking joined with the lot name and spot label for
// display in history listings.
type BookingWithPlace struct {
	entity.Booking
	LotName string
	SpotUID string
}

type BookingRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Booking, error)
	// MarkOngoingTx records the actual arrival: status booked -> ongoing,
	// start_time replaced by the arrival instant.
	MarkOngoingTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, startTime time.Time) error
	// FinalizeTx closes the booking: end_time, derived duration and cost,
	// status completed. Terminal; callers must have released the spot in
	// the same transaction.
	FinalizeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, endTime time.Time, durationHours, cost float64) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithPlace, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, lot_id, spot_id, vehicle_number, start_time, end_time, duration_hours, cost, status, created_at, updated_at`

func (r *bookingRepository) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := tx.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.LotID,
		booking.SpotID,
		booking.VehicleNumber,
		booking.StartTime,
		booking.EndTime,
		booking.DurationHours,
		booking.Cost,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("spot_id", booking.SpotID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.LotID,
		&booking.SpotID,
		&booking.VehicleNumber,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.Cost,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	booking, err := scanBooking(tx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) MarkOngoingTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, startTime time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'ongoing', start_time = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'booked'
	`

	result, err := tx.Exec(ctx, query, id, startTime)
	if err != nil {
		r.log.Error("Failed to mark booking ongoing",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("mark booking %s ongoing: %w", id.String(), err)
	}

	// The row was locked with the expected status; losing it here means a
	// concurrent writer slipped in between.
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrConflict)
	}

	return nil
}

func (r *bookingRepository) FinalizeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, endTime time.Time, durationHours, cost float64) error {
	query := `
		UPDATE bookings
		SET status = 'completed', end_time = $2, duration_hours = $3, cost = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'ongoing'
	`

	result, err := tx.Exec(ctx, query, id, endTime, durationHours, cost)
	if err != nil {
		r.log.Error("Failed to finalize booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("finalize booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrConflict)
	}

	return nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithPlace, error) {
	query := `
		SELECT b.id, b.user_id, b.lot_id, b.spot_id, b.vehicle_number,
		       b.start_time, b.end_time, b.duration_hours, b.cost, b.status,
		       b.created_at, b.updated_at,
		       l.name, s.spot_uid
		FROM bookings b
		JOIN lots l ON l.id = b.lot_id
		JOIN spots s ON s.id = b.spot_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*BookingWithPlace
	for rows.Next() {
		var b BookingWithPlace
		err := rows.Scan(
			&b.ID, &b.UserID, &b.LotID, &b.SpotID, &b.VehicleNumber,
			&b.StartTime, &b.EndTime, &b.DurationHours, &b.Cost, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
			&b.LotName, &b.SpotUID,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user %s: %w", userID.String(), err)
	}

	return count, nil
}
