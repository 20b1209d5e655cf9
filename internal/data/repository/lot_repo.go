package repository

import (
	"context"
	"fmt"

	"parking-booking/internal/data/entity"
	"parking-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LotWithAvailability carries a lot plus its available-spot count. The count
// is always derived from spot rows on read, never stored.
type LotWithAvailability struct {
	entity.Lot
	AvailableSlots int
}

type LotRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, lot *entity.Lot) error
	Update(ctx context.Context, lot *entity.Lot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	ListWithAvailability(ctx context.Context) ([]*LotWithAvailability, error)
	Search(ctx context.Context, term string) ([]*LotWithAvailability, error)
	AdjustTotalSlotsTx(ctx context.Context, tx pgx.Tx, lotID uuid.UUID, delta int) error
}

type lotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLotRepository(db database.PgxIface, log *zap.Logger) LotRepository {
	return &lotRepository{
		db:  db,
		log: log.With(zap.String("repository", "lot")),
	}
}

const lotWithAvailabilityQuery = `
	SELECT l.id, l.name, l.address, l.pincode, l.price_per_hour, l.total_slots,
	       l.created_at, l.updated_at,
	       (SELECT COUNT(s.id) FROM spots s WHERE s.lot_id = l.id AND s.status = 'available') AS available_slots
	FROM lots l
`

func (r *lotRepository) CreateTx(ctx context.Context, tx pgx.Tx, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, name, address, pincode, price_per_hour, total_slots, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		lot.ID,
		lot.Name,
		lot.Address,
		lot.Pincode,
		lot.PricePerHour,
		lot.TotalSlots,
		lot.CreatedAt,
		lot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create lot",
			zap.Error(err),
			zap.String("name", lot.Name),
		)
		return fmt.Errorf("create lot %s: %w", lot.Name, err)
	}

	return nil
}

func (r *lotRepository) Update(ctx context.Context, lot *entity.Lot) error {
	query := `
		UPDATE lots
		SET name = $2, address = $3, pincode = $4, price_per_hour = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		lot.ID,
		lot.Name,
		lot.Address,
		lot.Pincode,
		lot.PricePerHour,
		lot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update lot",
			zap.Error(err),
			zap.String("lot_id", lot.ID.String()),
		)
		return fmt.Errorf("update lot %s: %w", lot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lot %s: %w", lot.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *lotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	query := `
		SELECT id, name, address, pincode, price_per_hour, total_slots, created_at, updated_at
		FROM lots
		WHERE id = $1
	`

	var lot entity.Lot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lot.ID,
		&lot.Name,
		&lot.Address,
		&lot.Pincode,
		&lot.PricePerHour,
		&lot.TotalSlots,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find lot by ID",
			zap.Error(err),
			zap.String("lot_id", id.String()),
		)
		return nil, fmt.Errorf("find lot by ID %s: %w", id.String(), err)
	}

	return &lot, nil
}

func (r *lotRepository) ListWithAvailability(ctx context.Context) ([]*LotWithAvailability, error) {
	query := lotWithAvailabilityQuery + ` ORDER BY l.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list lots", zap.Error(err))
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	return scanLotAvailabilityRows(rows)
}

func (r *lotRepository) Search(ctx context.Context, term string) ([]*LotWithAvailability, error) {
	query := lotWithAvailabilityQuery + `
		WHERE l.pincode ILIKE $1 OR l.name ILIKE $1 OR l.address ILIKE $1
		ORDER BY l.name
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		r.log.Error("Failed to search lots",
			zap.Error(err),
			zap.String("term", term),
		)
		return nil, fmt.Errorf("search lots %q: %w", term, err)
	}
	defer rows.Close()

	return scanLotAvailabilityRows(rows)
}

func (r *lotRepository) AdjustTotalSlotsTx(ctx context.Context, tx pgx.Tx, lotID uuid.UUID, delta int) error {
	query := `UPDATE lots SET total_slots = total_slots + $2, updated_at = NOW() WHERE id = $1`

	result, err := tx.Exec(ctx, query, lotID, delta)
	if err != nil {
		r.log.Error("Failed to adjust lot total slots",
			zap.Error(err),
			zap.String("lot_id", lotID.String()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust lot %s total slots: %w", lotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lot %s: %w", lotID.String(), ErrNotFound)
	}

	return nil
}

func scanLotAvailabilityRows(rows pgx.Rows) ([]*LotWithAvailability, error) {
	var lots []*LotWithAvailability
	for rows.Next() {
		var lot LotWithAvailability
		err := rows.Scan(
			&lot.ID,
			&lot.Name,
			&lot.Address,
			&lot.Pincode,
			&lot.PricePerHour,
			&lot.TotalSlots,
			&lot.CreatedAt,
			&lot.UpdatedAt,
			&lot.AvailableSlots,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lot row: %w", err)
		}
		lots = append(lots, &lot)
	}
	return lots, rows.Err()
}
