package models

import (
	"errors"
	"testing"
	"time"
)

func TestRecomputeTotal(t *testing.T) {
	b := Booking{Unit: 3, UnitCost: 1000}
	b.RecomputeTotal()
	if b.TotalCost != 3000 {
		t.Fatalf("expected total 3000, got %v", b.TotalCost)
	}
}

func TestApplyEditRecomputesTotal(t *testing.T) {
	b := Booking{Unit: 3, UnitCost: 1000, Status: BookingStatusPending}
	b.RecomputeTotal()

	edit := BookingEditRequest{
		Contact:     "555-0101",
		Location:    "Riverside Hall",
		Unit:        5,
		BookingDate: "2026-10-01",
	}
	if err := b.ApplyEdit(edit, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalCost != 5000 {
		t.Errorf("expected total 5000 after edit, got %v", b.TotalCost)
	}
	if b.Location != "Riverside Hall" {
		t.Errorf("location not applied: %q", b.Location)
	}
}

func TestApplyEditRejectsCompleted(t *testing.T) {
	b := Booking{Unit: 1, UnitCost: 100, Status: BookingStatusCompleted}
	err := b.ApplyEdit(BookingEditRequest{Unit: 2, BookingDate: "2026-10-01"}, 100)
	if !errors.Is(err, ErrBookingCompleted) {
		t.Fatalf("expected ErrBookingCompleted, got %v", err)
	}
}

func TestApplyEditRejectsNonPositiveUnit(t *testing.T) {
	b := Booking{Unit: 1, UnitCost: 100, Status: BookingStatusPending}
	err := b.ApplyEdit(BookingEditRequest{Unit: 0, BookingDate: "2026-10-01"}, 100)
	if !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
}

func TestStatusLadderOrder(t *testing.T) {
	want := []BookingStatus{
		BookingStatusAssigned,
		BookingStatusPlanning,
		BookingStatusEquipping,
		BookingStatusOnWay,
		BookingStatusSettingUp,
		BookingStatusCompleted,
	}
	if len(StatusSequence) != len(want) {
		t.Fatalf("ladder length %d, want %d", len(StatusSequence), len(want))
	}
	for i, s := range want {
		if StatusSequence[i] != s {
			t.Errorf("ladder[%d] = %q, want %q", i, StatusSequence[i], s)
		}
	}
	if BookingStatusPending.SequenceIndex() != -1 {
		t.Errorf("pending should sit off the ladder")
	}
}

func TestCanAdvanceTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusAssigned, BookingStatusPlanning, true},
		{BookingStatusAssigned, BookingStatusCompleted, true}, // skips allowed
		{BookingStatusPlanning, BookingStatusAssigned, false}, // no regression
		{BookingStatusOnWay, BookingStatusOnWay, false},       // no self-moves
		{BookingStatusCompleted, BookingStatusPlanning, false},
		{BookingStatusPending, BookingStatusPlanning, false},
		{BookingStatusAssigned, BookingStatus("bogus"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanAdvanceTo(tc.to); got != tc.want {
			t.Errorf("CanAdvanceTo(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRemainingStatuses(t *testing.T) {
	rem := BookingStatusEquipping.RemainingStatuses()
	want := []BookingStatus{BookingStatusOnWay, BookingStatusSettingUp, BookingStatusCompleted}
	if len(rem) != len(want) {
		t.Fatalf("got %d remaining statuses, want %d", len(rem), len(want))
	}
	for i := range want {
		if rem[i] != want[i] {
			t.Errorf("remaining[%d] = %q, want %q", i, rem[i], want[i])
		}
	}
	if BookingStatusCompleted.RemainingStatuses() != nil {
		t.Errorf("completed should have no remaining statuses")
	}
}

func TestApplyAssignment(t *testing.T) {
	b := Booking{Status: BookingStatusPending}
	d := Decorator{ID: 7, Status: DecoratorStatusAccepted}

	if err := b.ApplyAssignment(&d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != BookingStatusAssigned {
		t.Errorf("status = %q, want Assigned", b.Status)
	}
	if !b.Assigned || b.AssignTo == nil || *b.AssignTo != 7 {
		t.Errorf("assignment fields not set: assigned=%v assignTo=%v", b.Assigned, b.AssignTo)
	}
	if d.TaskPending != 1 {
		t.Errorf("taskPending = %d, want 1", d.TaskPending)
	}
}

func TestApplyAssignmentRejectsPendingDecorator(t *testing.T) {
	b := Booking{Status: BookingStatusPending}
	d := Decorator{ID: 2, Status: DecoratorStatusPending}
	if err := b.ApplyAssignment(&d); !errors.Is(err, ErrDecoratorNotActive) {
		t.Fatalf("expected ErrDecoratorNotActive, got %v", err)
	}
}

func TestApplyAssignmentRejectsDoubleAssign(t *testing.T) {
	d := Decorator{ID: 3, Status: DecoratorStatusAccepted}
	b := Booking{Status: BookingStatusPending}
	if err := b.ApplyAssignment(&d); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}
	other := Decorator{ID: 4, Status: DecoratorStatusAccepted}
	if err := b.ApplyAssignment(&other); !errors.Is(err, ErrBookingAssigned) {
		t.Fatalf("expected ErrBookingAssigned, got %v", err)
	}
	if d.TaskPending != 1 || other.TaskPending != 0 {
		t.Errorf("counters disturbed: d=%d other=%d", d.TaskPending, other.TaskPending)
	}
}

func TestAdvanceToFullWalk(t *testing.T) {
	d := Decorator{ID: 1, Status: DecoratorStatusAccepted}
	b := Booking{Status: BookingStatusPending}
	if err := b.ApplyAssignment(&d); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	for _, next := range StatusSequence[1:] {
		if err := b.AdvanceTo(next, &d, now); err != nil {
			t.Fatalf("advance to %q failed: %v", next, err)
		}
	}

	if b.Status != BookingStatusCompleted {
		t.Errorf("status = %q, want Completed", b.Status)
	}
	if b.CompletedAt == nil || !b.CompletedAt.Equal(now) {
		t.Errorf("completedAt not stamped: %v", b.CompletedAt)
	}
	if d.TaskPending != 0 {
		t.Errorf("taskPending = %d, want 0 after completion", d.TaskPending)
	}
	if d.TaskCompleted != 1 {
		t.Errorf("taskCompleted = %d, want 1 after completion", d.TaskCompleted)
	}
}

func TestAdvanceToRejectsBackward(t *testing.T) {
	d := Decorator{ID: 1, Status: DecoratorStatusAccepted}
	id := d.ID
	b := Booking{Status: BookingStatusOnWay, Assigned: true, AssignTo: &id}

	if err := b.AdvanceTo(BookingStatusPlanning, &d, time.Now()); !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}
	if b.Status != BookingStatusOnWay {
		t.Errorf("status moved on rejected transition: %q", b.Status)
	}
}

func TestAdvanceToRejectsAfterCompleted(t *testing.T) {
	d := Decorator{ID: 1, Status: DecoratorStatusAccepted}
	id := d.ID
	b := Booking{Status: BookingStatusCompleted, Assigned: true, AssignTo: &id}

	if err := b.AdvanceTo(BookingStatusSettingUp, &d, time.Now()); !errors.Is(err, ErrBookingCompleted) {
		t.Fatalf("expected ErrBookingCompleted, got %v", err)
	}
}

func TestAdvanceToRequiresAssignment(t *testing.T) {
	b := Booking{Status: BookingStatusPending}
	if err := b.AdvanceTo(BookingStatusPlanning, nil, time.Now()); !errors.Is(err, ErrBookingNotAssigned) {
		t.Fatalf("expected ErrBookingNotAssigned, got %v", err)
	}
}
