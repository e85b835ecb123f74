package utils

import (
	"testing"

	"decor-booking-server/config"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hashing failed: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Errorf("correct password rejected")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Errorf("wrong password accepted")
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken(42, "client@example.com", "client")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("userID = %d, want 42", claims.UserID)
	}
	if claims.Email != "client@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "client" {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken(1, "a@example.com", "client")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	if _, err := VerifyToken(token + "x"); err == nil {
		t.Errorf("tampered token accepted")
	}

	config.AppConfig.JWT.Secret = "different-secret"
	if _, err := VerifyToken(token); err == nil {
		t.Errorf("token accepted after secret rotation")
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"not-an-email", false},
		{"", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
