package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestGetLimiterReusesKey(t *testing.T) {
	rl := NewRateLimiter()

	a := rl.GetLimiter("bookings|1.2.3.4", rate.Every(time.Second), 5)
	b := rl.GetLimiter("bookings|1.2.3.4", rate.Every(time.Second), 5)
	if a != b {
		t.Errorf("same key should return the same limiter")
	}

	other := rl.GetLimiter("bookings|5.6.7.8", rate.Every(time.Second), 5)
	if a == other {
		t.Errorf("different keys should get distinct limiters")
	}
}

func TestLimiterEnforcesBurst(t *testing.T) {
	rl := NewRateLimiter()
	limiter := rl.GetLimiter("auth|9.9.9.9", rate.Every(time.Minute), 2)

	if !limiter.Allow() || !limiter.Allow() {
		t.Fatalf("burst allowance should admit the first two requests")
	}
	if limiter.Allow() {
		t.Errorf("third request within the window should be rejected")
	}
}

func TestCleanupDropsIdleLimiters(t *testing.T) {
	rl := NewRateLimiter()
	rl.GetLimiter("stale|1.1.1.1", rate.Every(time.Second), 1)

	rl.mutex.Lock()
	rl.lastSeen["stale|1.1.1.1"] = time.Now().Add(-2 * time.Hour)
	rl.mutex.Unlock()

	rl.Cleanup()

	rl.mutex.Lock()
	_, exists := rl.limiters["stale|1.1.1.1"]
	rl.mutex.Unlock()
	if exists {
		t.Errorf("idle limiter should have been removed")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(24)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if len(a) != 48 { // hex doubles the byte length
		t.Errorf("token length = %d, want 48", len(a))
	}

	b, err := GenerateSecureToken(24)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if a == b {
		t.Errorf("two tokens should not collide")
	}
}
