package service

import (
	"context"
	"time"

	"github.com/hongminglow/atithi-inn/internal/models"
)

// PaymentGateway charges a booking.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, method string) (models.PaymentInfo, error)
}

// StubGateway records every charge as succeeded without contacting a
// payment provider.
type StubGateway struct {
	Now func() time.Time
}

const (
	StubPaymentID     = "TEST_PAYMENT_ID"
	StubPaymentStatus = "succeeded"
)

func (g StubGateway) Charge(_ context.Context, amount float64, method string) (models.PaymentInfo, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return models.PaymentInfo{
		ID:            StubPaymentID,
		Status:        StubPaymentStatus,
		PaymentMethod: method,
		AmountPaid:    amount,
		PaymentDate:   now(),
	}, nil
}
