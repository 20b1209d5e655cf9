package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// In-memory doubles behind the production ports. Services only touch the
// db handle through Begin/Commit/Rollback, so the fake tx is a no-op and
// all state lives in fakeStore.

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeDB) Begin(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeDB) Ping(context.Context) error            { return nil }
func (fakeDB) Close()                                {}

type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	sessions map[string]*entity.Session
	lots     map[uuid.UUID]*entity.Lot
	spots    map[uuid.UUID]*entity.Spot
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[string]*entity.Session),
		lots:     make(map[uuid.UUID]*entity.Lot),
		spots:    make(map[uuid.UUID]*entity.Spot),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func (s *fakeStore) spotsOf(lotID uuid.UUID) []*entity.Spot {
	var spots []*entity.Spot
	for _, spot := range s.spots {
		if spot.LotID == lotID {
			spots = append(spots, spot)
		}
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].SpotUID < spots[j].SpotUID })
	return spots
}

// ---------- user ----------

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repository.ErrAlreadyExists
		}
	}
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListCustomers(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.store.users {
		if !user.IsAdmin {
			cp := *user
			users = append(users, &cp)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// ---------- session ----------

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	cp := *session
	r.store.sessions[session.Token.String()] = &cp
	return nil
}

func (r *fakeSessionRepo) FindValidByToken(_ context.Context, token string) (*entity.Session, error) {
	session, ok := r.store.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(r.store.sessions, token)
	return nil
}

// ---------- lot ----------

type fakeLotRepo struct{ store *fakeStore }

func (r *fakeLotRepo) CreateTx(_ context.Context, _ pgx.Tx, lot *entity.Lot) error {
	cp := *lot
	r.store.lots[lot.ID] = &cp
	return nil
}

// Update touches only the editable columns, mirroring the SQL UPDATE's
// column list; total_slots moves exclusively through AdjustTotalSlotsTx.
func (r *fakeLotRepo) Update(_ context.Context, lot *entity.Lot) error {
	stored, ok := r.store.lots[lot.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = lot.Name
	stored.Address = lot.Address
	stored.Pincode = lot.Pincode
	stored.PricePerHour = lot.PricePerHour
	stored.UpdatedAt = lot.UpdatedAt
	return nil
}

func (r *fakeLotRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Lot, error) {
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *fakeLotRepo) ListWithAvailability(_ context.Context) ([]*repository.LotWithAvailability, error) {
	var lots []*repository.LotWithAvailability
	for _, lot := range r.store.lots {
		available := 0
		for _, spot := range r.store.spotsOf(lot.ID) {
			if spot.Status == entity.SpotStatusAvailable {
				available++
			}
		}
		lots = append(lots, &repository.LotWithAvailability{Lot: *lot, AvailableSlots: available})
	}
	sort.Slice(lots, func(i, j int) bool { return lots[i].Name < lots[j].Name })
	return lots, nil
}

func (r *fakeLotRepo) Search(ctx context.Context, term string) ([]*repository.LotWithAvailability, error) {
	all, _ := r.ListWithAvailability(ctx)
	var lots []*repository.LotWithAvailability
	for _, lot := range all {
		if containsFold(lot.Name, term) || containsFold(lot.Address, term) || containsFold(lot.Pincode, term) {
			lots = append(lots, lot)
		}
	}
	return lots, nil
}

func (r *fakeLotRepo) AdjustTotalSlotsTx(_ context.Context, _ pgx.Tx, lotID uuid.UUID, delta int) error {
	lot, ok := r.store.lots[lotID]
	if !ok {
		return repository.ErrNotFound
	}
	lot.TotalSlots += delta
	return nil
}

// ---------- spot ----------

type fakeSpotRepo struct{ store *fakeStore }

func (r *fakeSpotRepo) CreateBatchTx(_ context.Context, _ pgx.Tx, spots []*entity.Spot) error {
	for _, spot := range spots {
		cp := *spot
		r.store.spots[spot.ID] = &cp
	}
	return nil
}

func (r *fakeSpotRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Spot, error) {
	spot, ok := r.store.spots[id]
	if !ok {
		return nil, nil
	}
	cp := *spot
	return &cp, nil
}

func (r *fakeSpotRepo) FindByIDForUpdateTx(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*entity.Spot, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeSpotRepo) FindAvailableForUpdateTx(_ context.Context, _ pgx.Tx, lotID uuid.UUID) (*entity.Spot, error) {
	for _, spot := range r.store.spotsOf(lotID) {
		if spot.Status == entity.SpotStatusAvailable {
			cp := *spot
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSpotRepo) UpdateStatusTx(_ context.Context, _ pgx.Tx, spotID uuid.UUID, status entity.SpotStatus) error {
	spot, ok := r.store.spots[spotID]
	if !ok {
		return repository.ErrNotFound
	}
	spot.Status = status
	return nil
}

func (r *fakeSpotRepo) ListByLot(_ context.Context, lotID uuid.UUID) ([]*entity.Spot, error) {
	var spots []*entity.Spot
	for _, spot := range r.store.spotsOf(lotID) {
		cp := *spot
		spots = append(spots, &cp)
	}
	return spots, nil
}

func (r *fakeSpotRepo) MaxSpotNumberTx(_ context.Context, _ pgx.Tx, lotID uuid.UUID) (int, error) {
	max := 0
	for _, spot := range r.store.spotsOf(lotID) {
		i := strings.LastIndex(spot.SpotUID, "-")
		if i < 0 {
			continue
		}
		if n, err := strconv.Atoi(spot.SpotUID[i+1:]); err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *fakeSpotRepo) DeleteTx(_ context.Context, _ pgx.Tx, spotID uuid.UUID) error {
	if _, ok := r.store.spots[spotID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.spots, spotID)
	return nil
}

func (r *fakeSpotRepo) FindOccupancy(_ context.Context, spotID uuid.UUID) (*repository.SpotOccupancy, error) {
	spot, ok := r.store.spots[spotID]
	if !ok {
		return nil, nil
	}
	occ := &repository.SpotOccupancy{Spot: *spot}
	if lot, ok := r.store.lots[spot.LotID]; ok {
		occ.LotPricePerHour = lot.PricePerHour
	}
	for _, booking := range r.store.bookings {
		if booking.SpotID == spotID && booking.IsActive() {
			user := r.store.users[booking.UserID]
			status := booking.Status
			startTime := booking.StartTime
			occ.BookingStatus = &status
			occ.VehicleNumber = &booking.VehicleNumber
			occ.StartTime = &startTime
			if user != nil {
				occ.CustomerName = &user.FullName
			}
			break
		}
	}
	return occ, nil
}

// ---------- booking ----------

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) CreateTx(_ context.Context, _ pgx.Tx, booking *entity.Booking) error {
	cp := *booking
	r.store.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (r *fakeBookingRepo) FindByIDForUpdateTx(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookingRepo) MarkOngoingTx(_ context.Context, _ pgx.Tx, id uuid.UUID, startTime time.Time) error {
	booking, ok := r.store.bookings[id]
	if !ok || booking.Status != entity.BookingStatusBooked {
		return repository.ErrConflict
	}
	booking.Status = entity.BookingStatusOngoing
	booking.StartTime = startTime
	booking.UpdatedAt = startTime
	return nil
}

func (r *fakeBookingRepo) FinalizeTx(_ context.Context, _ pgx.Tx, id uuid.UUID, endTime time.Time, durationHours, cost float64) error {
	booking, ok := r.store.bookings[id]
	if !ok || booking.Status != entity.BookingStatusOngoing {
		return repository.ErrConflict
	}
	booking.Status = entity.BookingStatusCompleted
	booking.EndTime = &endTime
	booking.DurationHours = durationHours
	booking.Cost = cost
	booking.UpdatedAt = endTime
	return nil
}

func (r *fakeBookingRepo) FindByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*repository.BookingWithPlace, error) {
	var bookings []*repository.BookingWithPlace
	for _, booking := range r.store.bookings {
		if booking.UserID != userID {
			continue
		}
		item := &repository.BookingWithPlace{Booking: *booking}
		if lot, ok := r.store.lots[booking.LotID]; ok {
			item.LotName = lot.Name
		}
		if spot, ok := r.store.spots[booking.SpotID]; ok {
			item.SpotUID = spot.SpotUID
		}
		bookings = append(bookings, item)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	if offset >= len(bookings) {
		return nil, nil
	}
	bookings = bookings[offset:]
	if limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (r *fakeBookingRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			n++
		}
	}
	return n, nil
}

// ---------- report ----------

type fakeReportRepo struct{ store *fakeStore }

func (r *fakeReportRepo) UserSummary(_ context.Context, userID uuid.UUID) (*repository.UserSummary, error) {
	summary := &repository.UserSummary{}
	for _, booking := range r.store.bookings {
		if booking.UserID == userID && booking.Status == entity.BookingStatusCompleted {
			summary.TotalHours += booking.DurationHours
			summary.TotalCost += booking.Cost
		}
	}
	return summary, nil
}

func (r *fakeReportRepo) UserDailySpend(_ context.Context, userID uuid.UUID) ([]*repository.DailySpend, error) {
	byDay := make(map[string]*repository.DailySpend)
	for _, booking := range r.store.bookings {
		if booking.UserID != userID || booking.Status != entity.BookingStatusCompleted {
			continue
		}
		day := booking.StartTime.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &repository.DailySpend{Date: day}
			byDay[day] = entry
		}
		entry.TotalHours += booking.DurationHours
		entry.TotalCost += booking.Cost
	}
	var days []*repository.DailySpend
	for _, entry := range byDay {
		days = append(days, entry)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func (r *fakeReportRepo) RevenueByLot(_ context.Context) ([]*repository.LotRevenue, error) {
	byLot := make(map[uuid.UUID]float64)
	for _, booking := range r.store.bookings {
		if booking.Status == entity.BookingStatusCompleted {
			byLot[booking.LotID] += booking.Cost
		}
	}
	var revenues []*repository.LotRevenue
	for lotID, revenue := range byLot {
		rev := &repository.LotRevenue{LotID: lotID, Revenue: revenue}
		if lot, ok := r.store.lots[lotID]; ok {
			rev.LotName = lot.Name
		}
		revenues = append(revenues, rev)
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].LotName < revenues[j].LotName })
	return revenues, nil
}

func (r *fakeReportRepo) RevenueByDay(_ context.Context) ([]*repository.DayRevenue, error) {
	byDay := make(map[string]float64)
	for _, booking := range r.store.bookings {
		if booking.Status == entity.BookingStatusCompleted {
			byDay[booking.EndTime.Format("2006-01-02")] += booking.Cost
		}
	}
	var revenues []*repository.DayRevenue
	for day, revenue := range byDay {
		revenues = append(revenues, &repository.DayRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].Date < revenues[j].Date })
	return revenues, nil
}

func (r *fakeReportRepo) Occupancy(_ context.Context) ([]*repository.LotOccupancy, error) {
	var lots []*repository.LotOccupancy
	for _, lot := range r.store.lots {
		occ := &repository.LotOccupancy{LotID: lot.ID, LotName: lot.Name, TotalSlots: lot.TotalSlots}
		for _, spot := range r.store.spotsOf(lot.ID) {
			if spot.Status == entity.SpotStatusAvailable {
				occ.Available++
			} else {
				occ.Occupied++
			}
		}
		lots = append(lots, occ)
	}
	sort.Slice(lots, func(i, j int) bool { return lots[i].LotName < lots[j].LotName })
	return lots, nil
}

// ---------- harness ----------

type testEnv struct {
	store *fakeStore
	repo  *repository.Repository
	db    database.PgxIface
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	return &testEnv{
		store: store,
		repo: &repository.Repository{
			User:    &fakeUserRepo{store},
			Session: &fakeSessionRepo{store},
			Lot:     &fakeLotRepo{store},
			Spot:    &fakeSpotRepo{store},
			Booking: &fakeBookingRepo{store},
			Report:  &fakeReportRepo{store},
		},
		db: fakeDB{},
	}
}

func (e *testEnv) seedUser(email string, isAdmin bool) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		PasswordHash: "x",
		FullName:     "Test User",
		Pincode:      "12345",
		Address:      "1 Test Street",
		IsAdmin:      isAdmin,
	}
	e.store.users[user.ID] = user
	return user
}

func (e *testEnv) seedLot(name string, pricePerHour float64, slots int) *entity.Lot {
	now := time.Now()
	lot := &entity.Lot{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Address:      "2 Lot Road",
		Pincode:      "54321",
		PricePerHour: pricePerHour,
		TotalSlots:   slots,
	}
	e.store.lots[lot.ID] = lot
	for i := 1; i <= slots; i++ {
		spot := &entity.Spot{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			LotID:      lot.ID,
			SpotUID:    "A-" + strconv.Itoa(i),
			Status:     entity.SpotStatusAvailable,
		}
		e.store.spots[spot.ID] = spot
	}
	return lot
}

func (e *testEnv) occupiedCount(lotID uuid.UUID) int {
	n := 0
	for _, spot := range e.store.spotsOf(lotID) {
		if spot.Status == entity.SpotStatusOccupied {
			n++
		}
	}
	return n
}

func (e *testEnv) activeBookingCount(lotID uuid.UUID) int {
	n := 0
	for _, booking := range e.store.bookings {
		if booking.LotID == lotID && booking.IsActive() {
			n++
		}
	}
	return n
}

func (e *testEnv) newBookingService() *bookingService {
	return NewBookingService(e.db, e.repo, NewHourlyCostCalculator(true), zap.NewNop()).(*bookingService)
}

func (e *testEnv) newLotService() *lotService {
	return NewLotService(e.db, e.repo, NewHourlyCostCalculator(true), "A", zap.NewNop()).(*lotService)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func ctx() context.Context { return context.Background() }
