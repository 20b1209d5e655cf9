package usecase

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/request"

	"github.com/google/uuid"
)

func TestLotService_CreateLot_SpawnsSpots(t *testing.T) {
	env := newTestEnv()
	svc := env.newLotService()

	lot, err := svc.CreateLot(ctx(), &request.CreateLotRequest{
		Name:         "Central",
		Address:      "2 Lot Road",
		Pincode:      "54321",
		PricePerHour: 20,
		TotalSlots:   5,
	})
	if err != nil {
		t.Fatalf("CreateLot failed: %v", err)
	}

	if lot.AvailableSlots != 5 {
		t.Errorf("available_slots = %d, want 5", lot.AvailableSlots)
	}

	spots := env.store.spotsOf(uuid.MustParse(lot.ID))
	if len(spots) != 5 {
		t.Fatalf("spot rows = %d, want 5", len(spots))
	}
	for i, spot := range spots {
		want := "A-" + strconv.Itoa(i+1)
		if spot.SpotUID != want {
			t.Errorf("spot %d label = %s, want %s", i, spot.SpotUID, want)
		}
		if spot.Status != entity.SpotStatusAvailable {
			t.Errorf("spot %s status = %s, want available", spot.SpotUID, spot.Status)
		}
	}
}

func TestLotService_AddSpots_ContinuesNumbering(t *testing.T) {
	env := newTestEnv()
	lot := env.seedLot("Central", 20, 3)
	svc := env.newLotService()

	if err := svc.AddSpots(ctx(), lot.ID, &request.AddSpotsRequest{Count: 2}); err != nil {
		t.Fatalf("AddSpots failed: %v", err)
	}

	spots := env.store.spotsOf(lot.ID)
	if len(spots) != 5 {
		t.Fatalf("spot rows = %d, want 5", len(spots))
	}
	labels := map[string]bool{}
	for _, spot := range spots {
		labels[spot.SpotUID] = true
	}
	for _, want := range []string{"A-1", "A-2", "A-3", "A-4", "A-5"} {
		if !labels[want] {
			t.Errorf("missing spot label %s", want)
		}
	}
	if got := env.store.lots[lot.ID].TotalSlots; got != 5 {
		t.Errorf("total_slots = %d, want 5", got)
	}
}

func TestLotService_AddSpots_NeverReissuesDeletedLabel(t *testing.T) {
	env := newTestEnv()
	lot := env.seedLot("Central", 20, 3)
	svc := env.newLotService()

	// Free the middle label, then grow the lot. The new spot must get a
	// fresh label, not the one just deleted and not a duplicate of A-3.
	var middle *entity.Spot
	for _, spot := range env.store.spotsOf(lot.ID) {
		if spot.SpotUID == "A-2" {
			middle = spot
		}
	}
	if middle == nil {
		t.Fatal("seed lot missing spot A-2")
	}
	if err := svc.DeleteSpot(ctx(), middle.ID); err != nil {
		t.Fatalf("DeleteSpot failed: %v", err)
	}

	if err := svc.AddSpots(ctx(), lot.ID, &request.AddSpotsRequest{Count: 1}); err != nil {
		t.Fatalf("AddSpots failed: %v", err)
	}

	seen := map[string]int{}
	for _, spot := range env.store.spotsOf(lot.ID) {
		seen[spot.SpotUID]++
	}
	for label, n := range seen {
		if n > 1 {
			t.Errorf("spot label %s assigned %d times; labels must be unique within a lot", label, n)
		}
	}
	if seen["A-4"] != 1 {
		t.Errorf("labels = %v, want the new spot labelled A-4", seen)
	}
	if got := env.store.lots[lot.ID].TotalSlots; got != 3 {
		t.Errorf("total_slots = %d, want 3", got)
	}
}

func TestLotService_UpdateLot(t *testing.T) {
	env := newTestEnv()
	lot := env.seedLot("Central", 20, 2)
	svc := env.newLotService()

	err := svc.UpdateLot(ctx(), lot.ID, &request.UpdateLotRequest{
		Name:         "Central Plaza",
		Address:      "9 New Road",
		Pincode:      "99999",
		PricePerHour: 25,
	})
	if err != nil {
		t.Fatalf("UpdateLot failed: %v", err)
	}

	stored := env.store.lots[lot.ID]
	if stored.Name != "Central Plaza" || stored.PricePerHour != 25 {
		t.Errorf("lot = %+v, want updated name and rate", stored)
	}
	if stored.TotalSlots != 2 {
		t.Errorf("total_slots = %d, want 2 (edits must not touch capacity)", stored.TotalSlots)
	}

	err = svc.UpdateLot(ctx(), uuid.New(), &request.UpdateLotRequest{
		Name:         "Ghost",
		Address:      "Nowhere",
		Pincode:      "00000",
		PricePerHour: 1,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("UpdateLot on unknown lot error = %v, want ErrNotFound", err)
	}
}

func TestLotService_DeleteSpot_RejectsOccupied(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser("driver@example.com", false)
	lot := env.seedLot("Central", 20, 1)
	bookingSvc := env.newBookingService()
	svc := env.newLotService()

	if _, err := bookingSvc.Reserve(ctx(), user.ID, reserveReq(lot.ID)); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	spot := env.store.spotsOf(lot.ID)[0]
	err := svc.DeleteSpot(ctx(), spot.ID)
	if !errors.Is(err, repository.ErrSpotOccupied) {
		t.Fatalf("DeleteSpot error = %v, want ErrSpotOccupied", err)
	}
	if len(env.store.spotsOf(lot.ID)) != 1 {
		t.Error("occupied spot was deleted")
	}
}

func TestLotService_DeleteSpot_ShrinksLot(t *testing.T) {
	env := newTestEnv()
	lot := env.seedLot("Central", 20, 2)
	svc := env.newLotService()

	spot := env.store.spotsOf(lot.ID)[0]
	if err := svc.DeleteSpot(ctx(), spot.ID); err != nil {
		t.Fatalf("DeleteSpot failed: %v", err)
	}

	if got := len(env.store.spotsOf(lot.ID)); got != 1 {
		t.Errorf("spot rows = %d, want 1", got)
	}
	if got := env.store.lots[lot.ID].TotalSlots; got != 1 {
		t.Errorf("total_slots = %d, want 1", got)
	}
}

func TestLotService_ListLots_DerivesAvailability(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser("driver@example.com", false)
	lot := env.seedLot("Central", 20, 3)
	env.seedLot("Annex", 10, 2)
	bookingSvc := env.newBookingService()
	svc := env.newLotService()

	if _, err := bookingSvc.Reserve(ctx(), user.ID, reserveReq(lot.ID)); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	lots, err := svc.ListLots(ctx())
	if err != nil {
		t.Fatalf("ListLots failed: %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("lots = %d, want 2", len(lots))
	}
	for _, l := range lots {
		switch l.Name {
		case "Central":
			if l.AvailableSlots != 2 {
				t.Errorf("Central available = %d, want 2", l.AvailableSlots)
			}
		case "Annex":
			if l.AvailableSlots != 2 {
				t.Errorf("Annex available = %d, want 2", l.AvailableSlots)
			}
		}
	}
}

func TestLotService_SearchLots(t *testing.T) {
	env := newTestEnv()
	env.seedLot("Central Plaza", 20, 1)
	env.seedLot("Airport", 30, 1)
	svc := env.newLotService()

	lots, err := svc.SearchLots(ctx(), "central")
	if err != nil {
		t.Fatalf("SearchLots failed: %v", err)
	}
	if len(lots) != 1 || lots[0].Name != "Central Plaza" {
		t.Errorf("search result = %+v, want only Central Plaza", lots)
	}
}

func TestLotService_SpotDetail_EstimatesOngoingCharge(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser("driver@example.com", false)
	lot := env.seedLot("Central", 20, 1)
	bookingSvc := env.newBookingService()
	svc := env.newLotService()

	booking, err := bookingSvc.Reserve(ctx(), user.ID, reserveReq(lot.ID))
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	spot := env.store.spotsOf(lot.ID)[0]

	// Before arrival the booking holds the spot but nothing is billable yet.
	detail, err := svc.SpotDetail(ctx(), spot.ID)
	if err != nil {
		t.Fatalf("SpotDetail failed: %v", err)
	}
	if detail.Status != entity.SpotStatusOccupied {
		t.Errorf("status = %s, want occupied", detail.Status)
	}
	if detail.EstimatedCost != nil {
		t.Errorf("estimated_cost = %v, want nil before parking starts", *detail.EstimatedCost)
	}

	arrival := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	bookingSvc.now = func() time.Time { return arrival }
	if _, err := bookingSvc.StartParking(ctx(), user.ID, uuid.MustParse(booking.ID)); err != nil {
		t.Fatalf("StartParking failed: %v", err)
	}

	// Half an hour in, the running estimate is 0.5h at 20/h.
	svc.now = func() time.Time { return arrival.Add(30 * time.Minute) }
	detail, err = svc.SpotDetail(ctx(), spot.ID)
	if err != nil {
		t.Fatalf("SpotDetail failed: %v", err)
	}
	if detail.EstimatedCost == nil {
		t.Fatal("estimated_cost missing for ongoing booking")
	}
	if math.Abs(*detail.EstimatedCost-10) > 1e-9 {
		t.Errorf("estimated_cost = %v, want 10", *detail.EstimatedCost)
	}
	if detail.ElapsedHours == nil || math.Abs(*detail.ElapsedHours-0.5) > 1e-9 {
		t.Errorf("elapsed_hours = %v, want 0.5", detail.ElapsedHours)
	}
}
