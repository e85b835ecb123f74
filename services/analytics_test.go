package services

import (
	"testing"

	"decor-booking-server/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ServiceCategory: models.CategoryHome, Status: models.BookingStatusCompleted, TotalCost: 3000},
		{ServiceCategory: models.CategoryWedding, Status: models.BookingStatusCompleted, TotalCost: 5500},
		{ServiceCategory: models.CategoryHome, Status: models.BookingStatusPlanning, TotalCost: 1200},
		{ServiceCategory: models.CategoryOffice, Status: models.BookingStatusPending, TotalCost: 2400},
	}
}

func TestCompletedRevenue(t *testing.T) {
	got := CompletedRevenue(sampleBookings())
	if got != 8500 {
		t.Fatalf("revenue = %v, want 8500", got)
	}
}

func TestCompletedRevenueEmpty(t *testing.T) {
	if got := CompletedRevenue(nil); got != 0 {
		t.Fatalf("revenue over no bookings = %v, want 0", got)
	}
}

func TestDecoratorEarningRounds(t *testing.T) {
	b := models.Booking{TotalCost: 1333}
	// 1333 * 0.20 = 266.6, rounds to 267
	if got := DecoratorEarning(b); got != 267 {
		t.Fatalf("earning = %v, want 267", got)
	}
}

func TestTotalDecoratorEarnings(t *testing.T) {
	got := TotalDecoratorEarnings(sampleBookings())
	// 3000*0.2 + 5500*0.2 = 600 + 1100
	if got != 1700 {
		t.Fatalf("total earnings = %v, want 1700", got)
	}
}

func TestComputeAggregateOrderIndependent(t *testing.T) {
	bookings := sampleBookings()
	forward := ComputeAggregate(bookings, IsCompleted, TotalCostOf)

	reversed := make([]models.Booking, len(bookings))
	for i, b := range bookings {
		reversed[len(bookings)-1-i] = b
	}
	backward := ComputeAggregate(reversed, IsCompleted, TotalCostOf)

	if forward != backward {
		t.Fatalf("aggregate depends on order: %v vs %v", forward, backward)
	}
}

func TestCompletedCount(t *testing.T) {
	if got := CompletedCount(sampleBookings()); got != 2 {
		t.Fatalf("completed count = %d, want 2", got)
	}
}

func TestDemandByCategory(t *testing.T) {
	demand := DemandByCategory(sampleBookings())

	if demand[models.CategoryHome] != 2 {
		t.Errorf("home demand = %d, want 2", demand[models.CategoryHome])
	}
	if demand[models.CategoryWedding] != 1 {
		t.Errorf("wedding demand = %d, want 1", demand[models.CategoryWedding])
	}
	if demand[models.CategoryOffice] != 1 {
		t.Errorf("office demand = %d, want 1", demand[models.CategoryOffice])
	}
	if _, ok := demand[models.CategorySeminar]; ok {
		t.Errorf("seminar should not appear with zero bookings")
	}
}
