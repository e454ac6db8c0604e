package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/harentsoaR/smile-care-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingTx struct {
	calls int
}

func (tx *recordingTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(12000), ToMinorUnits(120))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(29), ToMinorUnits(0.29))
}

func TestPaymentService_CreateIntent(t *testing.T) {
	gw := &testutil.FakeGateway{Secret: "pi_123_secret_456"}
	svc := NewPaymentService(nil, nil, gw, nil, zap.NewNop())

	secret, err := svc.CreateIntent(context.Background(), 120)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)
	assert.Equal(t, int64(12000), gw.Amount)
	assert.Equal(t, "usd", gw.Currency)
}

func TestPaymentService_CreateIntent_Errors(t *testing.T) {
	gw := &testutil.FakeGateway{}
	svc := NewPaymentService(nil, nil, gw, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, 0)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	gw.Err = errors.New("card_error")
	_, err = svc.CreateIntent(ctx, 50)
	assert.True(t, apperrors.Is(err, apperrors.CodeUpstream))

	gw.Err = fmt.Errorf("post: %w", context.DeadlineExceeded)
	_, err = svc.CreateIntent(ctx, 50)
	assert.True(t, apperrors.Is(err, apperrors.CodeTimeout))
}

func TestPaymentService_RecordPayment_MarksBookingPaid(t *testing.T) {
	store := testutil.NewMemStore()
	bookingID := primitive.NewObjectID()
	original := models.Booking{
		ID: bookingID, Email: "a@x.com", Treatment: "Cleaning",
		AppointmentDate: "2024-01-01", Slot: "9am", Price: 120,
	}
	store.Bookings = []models.Booking{original}
	tx := &recordingTx{}
	svc := NewPaymentService(store.PaymentStore(), store.BookingStore(), nil, tx, zap.NewNop())

	receipt, err := svc.RecordPayment(context.Background(), &models.Payment{
		BookingID: bookingID.Hex(), TransactionID: "pi_abc", Email: "a@x.com", Price: 120,
	})
	require.NoError(t, err)

	assert.True(t, receipt.BookingUpdated)
	assert.False(t, receipt.PaymentID.IsZero())
	assert.Equal(t, 1, tx.calls)
	require.Len(t, store.Payments, 1)

	want := original
	want.Paid = true
	want.TransactionID = "pi_abc"
	assert.Equal(t, want, store.Bookings[0])
}

func TestPaymentService_RecordPayment_MissingBookingStillPersists(t *testing.T) {
	store := testutil.NewMemStore()
	core, logs := observer.New(zap.WarnLevel)
	svc := NewPaymentService(store.PaymentStore(), store.BookingStore(), nil, nil, zap.New(core))

	receipt, err := svc.RecordPayment(context.Background(), &models.Payment{
		BookingID: primitive.NewObjectID().Hex(), TransactionID: "pi_abc",
	})
	require.NoError(t, err)

	assert.False(t, receipt.BookingUpdated)
	assert.Len(t, store.Payments, 1)
	assert.Equal(t, 1, logs.Len())
}

func TestPaymentService_RecordPayment_PaidOnlyOnce(t *testing.T) {
	store := testutil.NewMemStore()
	bookingID := primitive.NewObjectID()
	store.Bookings = []models.Booking{{ID: bookingID, Email: "a@x.com"}}
	svc := NewPaymentService(store.PaymentStore(), store.BookingStore(), nil, nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.RecordPayment(ctx, &models.Payment{BookingID: bookingID.Hex(), TransactionID: "pi_1"})
	require.NoError(t, err)
	second, err := svc.RecordPayment(ctx, &models.Payment{BookingID: bookingID.Hex(), TransactionID: "pi_2"})
	require.NoError(t, err)

	assert.True(t, first.BookingUpdated)
	assert.False(t, second.BookingUpdated)
	assert.Equal(t, "pi_1", store.Bookings[0].TransactionID)
}

func TestPaymentService_RecordPayment_InvalidBookingID(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewPaymentService(store.PaymentStore(), store.BookingStore(), nil, nil, zap.NewNop())

	_, err := svc.RecordPayment(context.Background(), &models.Payment{BookingID: "nope", TransactionID: "pi_1"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Empty(t, store.Payments)
}
