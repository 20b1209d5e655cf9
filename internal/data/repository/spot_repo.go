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

// SpotOccupancy is the spot-detail row: the spot itself plus, when an active
// booking holds it, the occupant summary.
type SpotOccupancy struct {
	entity.Spot
	LotPricePerHour float64
	CustomerName    *string
	VehicleNumber   *string
	StartTime       *time.Time
	BookingStatus   *entity.BookingStatus
}

type SpotRepository interface {
	CreateBatchTx(ctx context.Context, tx pgx.Tx, spots []*entity.Spot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Spot, error)
	FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Spot, error)
	// FindAvailableForUpdateTx locks and returns one available spot of the
	// lot (ascending spot_uid). Returns nil when the lot is full. SKIP
	// LOCKED keeps two concurrent reserves from ever picking the same row.
	FindAvailableForUpdateTx(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) (*entity.Spot, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, spotID uuid.UUID, status entity.SpotStatus) error
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*entity.Spot, error)
	// MaxSpotNumberTx returns the highest numeric suffix among the lot's
	// spot labels, 0 for an empty lot. New labels continue from here, so a
	// label freed by a deletion is never reissued.
	MaxSpotNumberTx(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) (int, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, spotID uuid.UUID) error
	FindOccupancy(ctx context.Context, spotID uuid.UUID) (*SpotOccupancy, error)
}

type spotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSpotRepository(db database.PgxIface, log *zap.Logger) SpotRepository {
	return &spotRepository{
		db:  db,
		log: log.With(zap.String("repository", "spot")),
	}
}

func (r *spotRepository) CreateBatchTx(ctx context.Context, tx pgx.Tx, spots []*entity.Spot) error {
	if len(spots) == 0 {
		return nil
	}

	rows := make([][]any, len(spots))
	for i, s := range spots {
		rows[i] = []any{s.ID, s.LotID, s.SpotUID, s.Status, s.CreatedAt}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"spots"},
		[]string{"id", "lot_id", "spot_uid", "status", "created_at"},
		pgx.CopyFromRows(rows),
	)

	if err != nil {
		r.log.Error("Failed to create spots",
			zap.Error(err),
			zap.String("lot_id", spots[0].LotID.String()),
			zap.Int("count", len(spots)),
		)
		return fmt.Errorf("create %d spots: %w", len(spots), err)
	}

	return nil
}

const spotColumns = `id, lot_id, spot_uid, status, created_at`

func (r *spotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = $1`

	var spot entity.Spot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&spot.ID, &spot.LotID, &spot.SpotUID, &spot.Status, &spot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find spot by ID",
			zap.Error(err),
			zap.String("spot_id", id.String()),
		)
		return nil, fmt.Errorf("find spot by ID %s: %w", id.String(), err)
	}

	return &spot, nil
}

func (r *spotRepository) FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = $1 FOR UPDATE`

	var spot entity.Spot
	err := tx.QueryRow(ctx, query, id).Scan(
		&spot.ID, &spot.LotID, &spot.SpotUID, &spot.Status, &spot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock spot",
			zap.Error(err),
			zap.String("spot_id", id.String()),
		)
		return nil, fmt.Errorf("lock spot %s: %w", id.String(), err)
	}

	return &spot, nil
}

func (r *spotRepository) FindAvailableForUpdateTx(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) (*entity.Spot, error) {
	query := `
		SELECT ` + spotColumns + `
		FROM spots
		WHERE lot_id = $1 AND status = 'available'
		ORDER BY spot_uid
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var spot entity.Spot
	err := tx.QueryRow(ctx, query, lotID).Scan(
		&spot.ID, &spot.LotID, &spot.SpotUID, &spot.Status, &spot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find available spot",
			zap.Error(err),
			zap.String("lot_id", lotID.String()),
		)
		return nil, fmt.Errorf("find available spot in lot %s: %w", lotID.String(), err)
	}

	return &spot, nil
}

func (r *spotRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, spotID uuid.UUID, status entity.SpotStatus) error {
	query := `UPDATE spots SET status = $2 WHERE id = $1`

	result, err := tx.Exec(ctx, query, spotID, status)
	if err != nil {
		r.log.Error("Failed to update spot status",
			zap.Error(err),
			zap.String("spot_id", spotID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update spot %s status to %s: %w", spotID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("spot %s: %w", spotID.String(), ErrNotFound)
	}

	return nil
}

func (r *spotRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*entity.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE lot_id = $1 ORDER BY spot_uid`

	rows, err := r.db.Query(ctx, query, lotID)
	if err != nil {
		r.log.Error("Failed to list spots",
			zap.Error(err),
			zap.String("lot_id", lotID.String()),
		)
		return nil, fmt.Errorf("list spots of lot %s: %w", lotID.String(), err)
	}
	defer rows.Close()

	var spots []*entity.Spot
	for rows.Next() {
		var spot entity.Spot
		err := rows.Scan(&spot.ID, &spot.LotID, &spot.SpotUID, &spot.Status, &spot.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan spot row", zap.Error(err))
			return nil, fmt.Errorf("scan spot row: %w", err)
		}
		spots = append(spots, &spot)
	}

	return spots, rows.Err()
}

func (r *spotRepository) MaxSpotNumberTx(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(MAX(NULLIF(substring(spot_uid from '([0-9]+)$'), '')::int), 0)
		FROM spots
		WHERE lot_id = $1
	`

	var max int
	if err := tx.QueryRow(ctx, query, lotID).Scan(&max); err != nil {
		r.log.Error("Failed to find max spot number",
			zap.Error(err),
			zap.String("lot_id", lotID.String()),
		)
		return 0, fmt.Errorf("find max spot number of lot %s: %w", lotID.String(), err)
	}

	return max, nil
}

func (r *spotRepository) DeleteTx(ctx context.Context, tx pgx.Tx, spotID uuid.UUID) error {
	query := `DELETE FROM spots WHERE id = $1`

	result, err := tx.Exec(ctx, query, spotID)
	if err != nil {
		r.log.Error("Failed to delete spot",
			zap.Error(err),
			zap.String("spot_id", spotID.String()),
		)
		return fmt.Errorf("delete spot %s: %w", spotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("spot %s: %w", spotID.String(), ErrNotFound)
	}

	return nil
}

func (r *spotRepository) FindOccupancy(ctx context.Context, spotID uuid.UUID) (*SpotOccupancy, error) {
	// LEFT JOIN on the active booking: the at-most-one-active-booking
	// invariant guarantees a single row.
	query := `
		SELECT s.id, s.lot_id, s.spot_uid, s.status, s.created_at,
		       l.price_per_hour,
		       u.full_name, b.vehicle_number, b.start_time, b.status
		FROM spots s
		JOIN lots l ON l.id = s.lot_id
		LEFT JOIN bookings b ON b.spot_id = s.id AND b.status IN ('booked', 'ongoing')
		LEFT JOIN users u ON u.id = b.user_id
		WHERE s.id = $1
	`

	var occ SpotOccupancy
	err := r.db.QueryRow(ctx, query, spotID).Scan(
		&occ.ID, &occ.LotID, &occ.SpotUID, &occ.Status, &occ.CreatedAt,
		&occ.LotPricePerHour,
		&occ.CustomerName, &occ.VehicleNumber, &occ.StartTime, &occ.BookingStatus,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load spot occupancy",
			zap.Error(err),
			zap.String("spot_id", spotID.String()),
		)
		return nil, fmt.Errorf("load spot %s occupancy: %w", spotID.String(), err)
	}

	return &occ, nil
}
