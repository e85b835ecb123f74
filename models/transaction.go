package models

import (
	"errors"
	"time"
)

// ErrSessionCompleted guards against confirming a payment session twice.
var ErrSessionCompleted = errors.New("payment session already completed")

// PaymentSessionStatus tracks a checkout session's lifecycle
type PaymentSessionStatus string

const (
	SessionStatusCreated   PaymentSessionStatus = "created"
	SessionStatusCompleted PaymentSessionStatus = "completed"
)

// PaymentSession represents one checkout attempt for a booking. The
// payment page redirects back with the session id, which the client
// confirms via PATCH /payment-success.
type PaymentSession struct {
	ID          uint                 `json:"id" gorm:"primaryKey"`
	SessionID   string               `json:"sessionId" gorm:"size:128;uniqueIndex;not null"`
	BookingID   uint                 `json:"bookingId" gorm:"not null;index"`
	ClientEmail string               `json:"clientEmail" gorm:"size:255;not null"`
	Amount      float64              `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status      PaymentSessionStatus `json:"status" gorm:"type:varchar(20);not null;default:'created'"`
	CreatedAt   time.Time            `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time            `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (PaymentSession) TableName() string {
	return "payment_sessions"
}

// Complete moves the session to completed. A second call fails so callers
// can turn repeat confirmations into a no-op instead of a second charge.
func (s *PaymentSession) Complete() error {
	if s.Status == SessionStatusCompleted {
		return ErrSessionCompleted
	}
	s.Status = SessionStatusCompleted
	return nil
}

// TransactionStatus is the recorded outcome of a payment
type TransactionStatus string

const (
	TransactionPaid   TransactionStatus = "paid"
	TransactionFailed TransactionStatus = "failed"
)

// Transaction is the read-only record of a settled payment, shown in the
// client's transaction history.
type Transaction struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	TransactionID string            `json:"transactionId" gorm:"size:128;uniqueIndex;not null"`
	BookingID     uint              `json:"bookingId" gorm:"not null;index"`
	ServiceName   string            `json:"serviceName" gorm:"size:200"`
	ClientEmail   string            `json:"clientEmail" gorm:"size:255;not null;index"`
	Amount        float64           `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaidAt        time.Time         `json:"paidAt"`
	CreatedAt     time.Time         `json:"createdAt" gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
