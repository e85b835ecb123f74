package models

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

func TestReapplyRestoresRemovedProfile(t *testing.T) {
	d := Decorator{
		Email:         "vendor@example.com",
		Expertise:     CategoryHome,
		Location:      "Old Town",
		Experience:    4,
		Status:        DecoratorStatusAccepted,
		TaskPending:   2,
		TaskCompleted: 9,
		DeletedAt:     gorm.DeletedAt{Time: time.Now(), Valid: true},
	}

	d.Reapply(DecoratorApplyRequest{
		Expertise:  CategoryWedding,
		Location:   "Harbor District",
		Experience: 6,
	})

	if d.DeletedAt.Valid {
		t.Errorf("removed marker should be cleared on re-application")
	}
	if d.Status != DecoratorStatusPending {
		t.Errorf("status = %q, want pending", d.Status)
	}
	if d.TaskPending != 0 || d.TaskCompleted != 0 {
		t.Errorf("counters not cleared: pending=%d completed=%d", d.TaskPending, d.TaskCompleted)
	}
	if d.Expertise != CategoryWedding || d.Location != "Harbor District" || d.Experience != 6 {
		t.Errorf("application fields not applied: %q %q %d", d.Expertise, d.Location, d.Experience)
	}
}

func TestAcceptClearsCounters(t *testing.T) {
	d := Decorator{
		Status:        DecoratorStatusPending,
		TaskPending:   3,
		TaskCompleted: 1,
	}

	d.Accept()

	if !d.IsAccepted() {
		t.Errorf("status = %q, want accepted", d.Status)
	}
	if d.TaskPending != 0 || d.TaskCompleted != 0 {
		t.Errorf("counters not reset: pending=%d completed=%d", d.TaskPending, d.TaskCompleted)
	}
}

func TestApplyRequestAcceptsZeroExperience(t *testing.T) {
	body := []byte(`{"decorationExpertise":"home","location":"Midtown","experience":0}`)

	var req DecoratorApplyRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		t.Fatalf("zero experience rejected: %v", err)
	}
	if req.Experience != 0 {
		t.Errorf("experience = %d, want 0", req.Experience)
	}
}

func TestApplyRequestRejectsNegativeExperience(t *testing.T) {
	body := []byte(`{"decorationExpertise":"home","location":"Midtown","experience":-1}`)

	var req DecoratorApplyRequest
	if err := binding.JSON.BindBody(body, &req); err == nil {
		t.Fatalf("negative experience accepted")
	}
}
