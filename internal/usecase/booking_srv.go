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

// BookingService drives the booking state machine:
//
//	booked -> ongoing -> completed
//
// Reserve allocates a spot and creates the booking; StartParking records the
// actual arrival (only actual usage is billed); CompleteParking computes the
// charge and releases the spot. Each operation runs as one transaction so
// spot occupancy and booking state always move together.
type BookingService interface {
	Reserve(ctx context.Context, userID uuid.UUID, req *request.ReserveRequest) (*response.BookingResponse, error)
	StartParking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	CompleteParking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	db      database.PgxIface
	repo    *repository.Repository
	pricing CostCalculator
	log     *zap.Logger
	now     func() time.Time
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, pricing CostCalculator, log *zap.Logger) BookingService {
	return &bookingService{
		db:      db,
		repo:    repo,
		pricing: pricing,
		log:     log.With(zap.String("service", "booking")),
		now:     time.Now,
	}
}

func (s *bookingService) Reserve(ctx context.Context, userID uuid.UUID, req *request.ReserveRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lotID, err := uuid.Parse(req.LotID)
	if err != nil {
		return nil, fmt.Errorf("invalid lot ID format %s: %w", req.LotID, err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time %s, expected RFC3339: %w", req.StartTime, err)
	}

	lot, err := s.repo.Lot.FindByID(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("check lot: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("lot %s: %w", req.LotID, repository.ErrNotFound)
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		LotID:         lotID,
		VehicleNumber: req.VehicleNumber,
		StartTime:     startTime,
		Status:        entity.BookingStatusBooked,
	}

	var spot *entity.Spot
	err = runInTx(ctx, s.db, func(tx pgx.Tx) error {
		// Lock one free spot; SKIP LOCKED means a concurrent reserve on
		// the same lot either gets a different spot or none at all.
		spot, err = s.repo.Spot.FindAvailableForUpdateTx(ctx, tx, lotID)
		if err != nil {
			return err
		}
		if spot == nil {
			return fmt.Errorf("lot %s: %w", req.LotID, repository.ErrNoAvailability)
		}

		if err := s.repo.Spot.UpdateStatusTx(ctx, tx, spot.ID, entity.SpotStatusOccupied); err != nil {
			return err
		}

		booking.SpotID = spot.ID
		return s.repo.Booking.CreateTx(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("lot_id", lotID.String()),
		zap.String("spot_uid", spot.SpotUID),
	)

	resp := response.BookingToResponse(booking)
	resp.LotName = lot.Name
	resp.SpotUID = spot.SpotUID
	return &resp, nil
}

func (s *bookingService) StartParking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	var booking *entity.Booking

	err := runInTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		booking, err = s.repo.Booking.FindByIDForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		// A booking owned by someone else is indistinguishable from one
		// that does not exist.
		if booking == nil || booking.UserID != userID {
			return fmt.Errorf("booking %s: %w", bookingID.String(), repository.ErrNotFound)
		}
		if booking.Status != entity.BookingStatusBooked {
			return fmt.Errorf("booking %s is %s: %w", bookingID.String(), booking.Status, repository.ErrInvalidState)
		}

		// Billing starts now; the reservation time is discarded.
		startTime := s.now()
		if err := s.repo.Booking.MarkOngoingTx(ctx, tx, bookingID, startTime); err != nil {
			return err
		}

		booking.Status = entity.BookingStatusOngoing
		booking.StartTime = startTime
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Parking started",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CompleteParking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	var booking *entity.Booking

	err := runInTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		booking, err = s.repo.Booking.FindByIDForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil || booking.UserID != userID {
			return fmt.Errorf("booking %s: %w", bookingID.String(), repository.ErrNotFound)
		}
		if booking.Status != entity.BookingStatusOngoing {
			return fmt.Errorf("booking %s is %s: %w", bookingID.String(), booking.Status, repository.ErrInvalidState)
		}

		lot, err := s.repo.Lot.FindByID(ctx, booking.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return fmt.Errorf("lot %s: %w", booking.LotID.String(), repository.ErrNotFound)
		}

		endTime := s.now()
		hours, cost := s.pricing.Quote(booking.StartTime, endTime, lot.PricePerHour)
		if hours < 0 {
			return fmt.Errorf("booking %s ends before it starts: %w", bookingID.String(), repository.ErrInvalidState)
		}

		if err := s.repo.Booking.FinalizeTx(ctx, tx, bookingID, endTime, hours, cost); err != nil {
			return err
		}

		// Release the spot in the same transaction as the final booking
		// update; a spot must never stay occupied without an active
		// booking.
		if err := s.repo.Spot.UpdateStatusTx(ctx, tx, booking.SpotID, entity.SpotStatusAvailable); err != nil {
			return err
		}

		booking.Status = entity.BookingStatusCompleted
		booking.EndTime = &endTime
		booking.DurationHours = hours
		booking.Cost = cost
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Parking completed",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("duration_hours", booking.DurationHours),
		zap.Float64("cost", booking.Cost),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp := response.BookingToResponse(&b.Booking)
		resp.LotName = b.LotName
		resp.SpotUID = b.SpotUID
		bookingResponses[i] = resp
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	return response.NewPaginatedResponse(bookingResponses, page, limit, total), nil
}
