package services

import (
	"math"

	"decor-booking-server/models"
)

// DecoratorShareRate is the fraction of a completed booking's total cost
// that accrues to the assigned decorator. The remainder is platform revenue.
const DecoratorShareRate = 0.20

// ComputeAggregate filters bookings by predicate and sums valueFn over the
// survivors. Revenue and earnings views are both instances of this with
// different predicates/value functions.
func ComputeAggregate(bookings []models.Booking, predicate func(models.Booking) bool, valueFn func(models.Booking) float64) float64 {
	var sum float64
	for _, b := range bookings {
		if predicate(b) {
			sum += valueFn(b)
		}
	}
	return sum
}

// IsCompleted reports whether the booking reached the terminal status.
func IsCompleted(b models.Booking) bool {
	return b.Status == models.BookingStatusCompleted
}

// TotalCostOf returns the booking's total cost.
func TotalCostOf(b models.Booking) float64 {
	return b.TotalCost
}

// DecoratorEarning is the decorator's rounded share of one completed booking.
func DecoratorEarning(b models.Booking) float64 {
	return math.Round(b.TotalCost * DecoratorShareRate)
}

// CompletedRevenue sums the full total cost of completed bookings. This is
// the admin revenue view, no share split applied.
func CompletedRevenue(bookings []models.Booking) float64 {
	return ComputeAggregate(bookings, IsCompleted, TotalCostOf)
}

// TotalDecoratorEarnings sums the decorator's share over completed bookings.
func TotalDecoratorEarnings(bookings []models.Booking) float64 {
	return ComputeAggregate(bookings, IsCompleted, DecoratorEarning)
}

// CompletedCount counts bookings in the terminal status.
func CompletedCount(bookings []models.Booking) int {
	var n int
	for _, b := range bookings {
		if IsCompleted(b) {
			n++
		}
	}
	return n
}

// DemandByCategory groups bookings by service category and counts them.
// All statuses count; demand is about what gets requested, not delivered.
func DemandByCategory(bookings []models.Booking) map[models.ServiceCategory]int {
	counts := make(map[models.ServiceCategory]int)
	for _, b := range bookings {
		counts[b.ServiceCategory]++
	}
	return counts
}
