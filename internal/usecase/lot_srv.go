package usecase

import (
	"context"
	"fmt"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/request"
	"parking-booking/internal/dto/response"
	"parking-booking/pkg/database"
	"parking-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LotService owns lot and spot administration. Spot rows and the lot's
// total_slots only ever change together, inside one transaction.
type LotService interface {
	CreateLot(ctx context.Context, req *request.CreateLotRequest) (*response.LotResponse, error)
	UpdateLot(ctx context.Context, lotID uuid.UUID, req *request.UpdateLotRequest) error
	ListLots(ctx context.Context) ([]response.LotResponse, error)
	SearchLots(ctx context.Context, term string) ([]response.LotResponse, error)
	ListSpots(ctx context.Context, lotID uuid.UUID) ([]response.SpotResponse, error)
	SpotDetail(ctx context.Context, spotID uuid.UUID) (*response.SpotDetailResponse, error)
	AddSpots(ctx context.Context, lotID uuid.UUID, req *request.AddSpotsRequest) error
	DeleteSpot(ctx context.Context, spotID uuid.UUID) error
}

type lotService struct {
	db         database.PgxIface
	repo       *repository.Repository
	pricing    CostCalculator
	spotPrefix string
	log        *zap.Logger
	now        func() time.Time
}

func NewLotService(db database.PgxIface, repo *repository.Repository, pricing CostCalculator, spotPrefix string, log *zap.Logger) LotService {
	return &lotService{
		db:         db,
		repo:       repo,
		pricing:    pricing,
		spotPrefix: spotPrefix,
		log:        log.With(zap.String("service", "lot")),
		now:        time.Now,
	}
}

func (s *lotService) CreateLot(ctx context.Context, req *request.CreateLotRequest) (*response.LotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create lot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := s.now()
	lot := &entity.Lot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Address:      req.Address,
		Pincode:      req.Pincode,
		PricePerHour: req.PricePerHour,
		TotalSlots:   req.TotalSlots,
	}

	err := runInTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.Lot.CreateTx(ctx, tx, lot); err != nil {
			return err
		}
		// One spot row per slot, so total_slots always matches the spot
		// count.
		spots := s.buildSpots(lot.ID, 1, req.TotalSlots, now)
		return s.repo.Spot.CreateBatchTx(ctx, tx, spots)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Lot created",
		zap.String("lot_id", lot.ID.String()),
		zap.String("name", lot.Name),
		zap.Int("total_slots", lot.TotalSlots),
	)

	resp := response.LotToResponse(&repository.LotWithAvailability{
		Lot:            *lot,
		AvailableSlots: lot.TotalSlots,
	})
	return &resp, nil
}

func (s *lotService) UpdateLot(ctx context.Context, lotID uuid.UUID, req *request.UpdateLotRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update lot validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Single UPDATE statement; the repo reports a missing row as
	// ErrNotFound, so no prior read is needed and concurrent edits
	// cannot interleave.
	lot := &entity.Lot{
		Base:         entity.Base{ID: lotID, UpdatedAt: s.now()},
		Name:         req.Name,
		Address:      req.Address,
		Pincode:      req.Pincode,
		PricePerHour: req.PricePerHour,
	}

	if err := s.repo.Lot.Update(ctx, lot); err != nil {
		return err
	}

	s.log.Info("Lot updated", zap.String("lot_id", lotID.String()))
	return nil
}

func (s *lotService) ListLots(ctx context.Context) ([]response.LotResponse, error) {
	lots, err := s.repo.Lot.ListWithAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}

	return lotsToResponses(lots), nil
}

func (s *lotService) SearchLots(ctx context.Context, term string) ([]response.LotResponse, error) {
	lots, err := s.repo.Lot.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search lots: %w", err)
	}

	return lotsToResponses(lots), nil
}

func (s *lotService) ListSpots(ctx context.Context, lotID uuid.UUID) ([]response.SpotResponse, error) {
	lot, err := s.repo.Lot.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, fmt.Errorf("lot %s: %w", lotID.String(), repository.ErrNotFound)
	}

	spots, err := s.repo.Spot.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	spotResponses := make([]response.SpotResponse, len(spots))
	for i, spot := range spots {
		spotResponses[i] = response.SpotToResponse(spot)
	}
	return spotResponses, nil
}

func (s *lotService) SpotDetail(ctx context.Context, spotID uuid.UUID) (*response.SpotDetailResponse, error) {
	occ, err := s.repo.Spot.FindOccupancy(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if occ == nil {
		return nil, fmt.Errorf("spot %s: %w", spotID.String(), repository.ErrNotFound)
	}

	detail := &response.SpotDetailResponse{
		SpotResponse:  response.SpotToResponse(&occ.Spot),
		CustomerName:  occ.CustomerName,
		VehicleNumber: occ.VehicleNumber,
		StartTime:     occ.StartTime,
	}

	// Running estimate at the lot's rate; only meaningful once parking
	// actually started.
	if occ.StartTime != nil && occ.BookingStatus != nil && *occ.BookingStatus == entity.BookingStatusOngoing {
		hours, cost := s.pricing.Quote(*occ.StartTime, s.now(), occ.LotPricePerHour)
		if hours < 0 {
			hours, cost = 0, 0
		}
		detail.ElapsedHours = &hours
		detail.EstimatedCost = &cost
	}

	return detail, nil
}

func (s *lotService) AddSpots(ctx context.Context, lotID uuid.UUID, req *request.AddSpotsRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add spots validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lot, err := s.repo.Lot.FindByID(ctx, lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return fmt.Errorf("lot %s: %w", lotID.String(), repository.ErrNotFound)
	}

	now := s.now()
	err = runInTx(ctx, s.db, func(tx pgx.Tx) error {
		// Continue from the highest existing label, not the row count;
		// after a deletion the count would reissue a label still in use.
		maxN, err := s.repo.Spot.MaxSpotNumberTx(ctx, tx, lotID)
		if err != nil {
			return err
		}

		spots := s.buildSpots(lotID, maxN+1, maxN+req.Count, now)
		if err := s.repo.Spot.CreateBatchTx(ctx, tx, spots); err != nil {
			return err
		}

		return s.repo.Lot.AdjustTotalSlotsTx(ctx, tx, lotID, req.Count)
	})
	if err != nil {
		return err
	}

	s.log.Info("Spots added",
		zap.String("lot_id", lotID.String()),
		zap.Int("count", req.Count),
	)
	return nil
}

func (s *lotService) DeleteSpot(ctx context.Context, spotID uuid.UUID) error {
	err := runInTx(ctx, s.db, func(tx pgx.Tx) error {
		spot, err := s.repo.Spot.FindByIDForUpdateTx(ctx, tx, spotID)
		if err != nil {
			return err
		}
		if spot == nil {
			return fmt.Errorf("spot %s: %w", spotID.String(), repository.ErrNotFound)
		}
		if spot.Status != entity.SpotStatusAvailable {
			return fmt.Errorf("spot %s: %w", spot.SpotUID, repository.ErrSpotOccupied)
		}

		if err := s.repo.Spot.DeleteTx(ctx, tx, spotID); err != nil {
			return err
		}

		return s.repo.Lot.AdjustTotalSlotsTx(ctx, tx, spot.LotID, -1)
	})
	if err != nil {
		return err
	}

	s.log.Info("Spot deleted", zap.String("spot_id", spotID.String()))
	return nil
}

// buildSpots creates spot entities labelled <prefix>-<from> .. <prefix>-<to>.
func (s *lotService) buildSpots(lotID uuid.UUID, from, to int, now time.Time) []*entity.Spot {
	var spots []*entity.Spot
	for i := from; i <= to; i++ {
		spots = append(spots, &entity.Spot{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			LotID:   lotID,
			SpotUID: utils.SpotUID(s.spotPrefix, i),
			Status:  entity.SpotStatusAvailable,
		})
	}
	return spots
}

func lotsToResponses(lots []*repository.LotWithAvailability) []response.LotResponse {
	lotResponses := make([]response.LotResponse, len(lots))
	for i, lot := range lots {
		lotResponses[i] = response.LotToResponse(lot)
	}
	return lotResponses
}
