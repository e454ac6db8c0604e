package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PaymentCurrency is the only currency charges are created in.
const PaymentCurrency = "usd"

// ChargeGateway creates a pending card charge and returns its client secret.
type ChargeGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

// PaymentReceipt reports what RecordPayment persisted.
type PaymentReceipt struct {
	PaymentID      primitive.ObjectID `json:"insertedId"`
	BookingUpdated bool               `json:"bookingUpdated"`
}

type PaymentService struct {
	payments PaymentStore
	bookings BookingStore
	gateway  ChargeGateway
	tx       Transactor
	log      *zap.Logger
	now      func() time.Time
}

// NewPaymentService builds the service. tx may be nil, in which case the
// payment insert and the booking update run as two separate writes.
func NewPaymentService(payments PaymentStore, bookings BookingStore, gateway ChargeGateway, tx Transactor, log *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		gateway:  gateway,
		tx:       tx,
		log:      log,
		now:      time.Now,
	}
}

// ToMinorUnits converts a price in dollars to cents.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent opens a card charge for price and returns the client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return "", apperrors.Validation("price must be greater than zero")
	}

	secret, err := s.gateway.CreateIntent(ctx, amount, PaymentCurrency)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.Timeout("payment gateway timed out", err)
		}
		return "", apperrors.Upstream("payment gateway", err)
	}
	return secret, nil
}

// RecordPayment stores p and marks its booking paid with p's transaction id.
// A missing or already paid booking does not fail the payment; it is logged
// and reported through BookingUpdated.
func (s *PaymentService) RecordPayment(ctx context.Context, p *models.Payment) (*PaymentReceipt, error) {
	bookingID, err := parseID("booking", p.BookingID)
	if err != nil {
		return nil, err
	}
	p.ID = primitive.NilObjectID
	p.CreatedAt = s.now().UTC()

	receipt := &PaymentReceipt{}
	record := func(ctx context.Context) error {
		id, err := s.payments.Insert(ctx, p)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		updated, err := s.bookings.MarkPaid(ctx, bookingID, p.TransactionID)
		if err != nil {
			return fmt.Errorf("mark booking paid: %w", err)
		}
		receipt.PaymentID = id
		receipt.BookingUpdated = updated
		return nil
	}

	if s.tx != nil {
		err = s.tx.WithTransaction(ctx, record)
	} else {
		err = record(ctx)
	}
	if err != nil {
		return nil, err
	}

	if !receipt.BookingUpdated {
		s.log.Warn("payment recorded for a missing or already paid booking",
			zap.String("bookingId", p.BookingID),
			zap.String("transactionId", p.TransactionID),
		)
	}
	return receipt, nil
}
