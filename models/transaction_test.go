package models

import (
	"errors"
	"testing"
)

func TestPaymentSessionCompleteOnlyOnce(t *testing.T) {
	s := PaymentSession{SessionID: "cs_abc", Status: SessionStatusCreated}

	if err := s.Complete(); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if s.Status != SessionStatusCompleted {
		t.Errorf("status = %q, want completed", s.Status)
	}

	if err := s.Complete(); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on repeat, got %v", err)
	}
}
