package services

import (
	"context"
	"errors"
	"testing"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/harentsoaR/smile-care-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []models.TreatmentOption {
	return []models.TreatmentOption{
		{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}, Price: 120},
		{Name: "X-Ray", Slots: []string{"9am", "1pm"}, Price: 50},
	}
}

func TestComputeAvailability_RemovesBookedSlots(t *testing.T) {
	bookings := []models.Booking{
		{Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "11am"},
	}

	got := ComputeAvailability("2024-01-01", catalog(), bookings)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"9am", "10am"}, got[0].Slots)
	assert.Equal(t, []string{"9am", "1pm"}, got[1].Slots)
}

func TestComputeAvailability_NoBookingsKeepsCatalog(t *testing.T) {
	got := ComputeAvailability("2024-01-01", catalog(), nil)
	assert.Equal(t, catalog(), got)
}

func TestComputeAvailability_FullyBookedIsEmptyNotNil(t *testing.T) {
	bookings := []models.Booking{
		{Treatment: "X-Ray", AppointmentDate: "2024-01-01", Slot: "9am"},
		{Treatment: "X-Ray", AppointmentDate: "2024-01-01", Slot: "1pm"},
	}

	got := ComputeAvailability("2024-01-01", catalog(), bookings)
	require.NotNil(t, got[1].Slots)
	assert.Empty(t, got[1].Slots)
}

func TestComputeAvailability_IgnoresOtherDatesAndTreatments(t *testing.T) {
	bookings := []models.Booking{
		{Treatment: "Cleaning", AppointmentDate: "2024-01-02", Slot: "9am"},
		{Treatment: "Whitening", AppointmentDate: "2024-01-01", Slot: "10am"},
	}

	got := ComputeAvailability("2024-01-01", catalog(), bookings)
	assert.Equal(t, []string{"9am", "10am", "11am"}, got[0].Slots)
}

func TestComputeAvailability_DoesNotMutateInputs(t *testing.T) {
	opts := catalog()
	bookings := []models.Booking{{Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "9am"}}

	_ = ComputeAvailability("2024-01-01", opts, bookings)
	assert.Equal(t, catalog(), opts)
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	opts := catalog()
	bookings := []models.Booking{
		{Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "10am"},
		{Treatment: "X-Ray", AppointmentDate: "2024-01-01", Slot: "1pm"},
	}

	first := ComputeAvailability("2024-01-01", opts, bookings)
	second := ComputeAvailability("2024-01-01", opts, bookings)
	assert.Equal(t, first, second)
}

func TestComputeAvailability_NeverAddsSlots(t *testing.T) {
	opts := catalog()
	bookings := []models.Booking{
		{Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "4pm"},
	}

	got := ComputeAvailability("2024-01-01", opts, bookings)
	for i := range got {
		for _, slot := range got[i].Slots {
			assert.True(t, opts[i].HasSlot(slot))
		}
		assert.LessOrEqual(t, len(got[i].Slots), len(opts[i].Slots))
	}
}

func TestAvailabilityService_Available(t *testing.T) {
	store := testutil.NewMemStore()
	store.Options = catalog()
	store.Bookings = []models.Booking{
		{Email: "a@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "11am"},
	}
	svc := NewAvailabilityService(store.OptionStore(), store.BookingStore())

	got, err := svc.Available(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"9am", "10am"}, got[0].Slots)
}

func TestAvailabilityService_RequiresDate(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewAvailabilityService(store.OptionStore(), store.BookingStore())

	_, err := svc.Available(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestAvailabilityService_StoreFailure(t *testing.T) {
	store := testutil.NewMemStore()
	store.Err = errors.New("connection reset")
	svc := NewAvailabilityService(store.OptionStore(), store.BookingStore())

	_, err := svc.Available(context.Background(), "2024-01-01")
	assert.ErrorIs(t, err, store.Err)
}

func TestAvailabilityService_Specialties(t *testing.T) {
	store := testutil.NewMemStore()
	store.Options = catalog()
	svc := NewAvailabilityService(store.OptionStore(), store.BookingStore())

	got, err := svc.Specialties(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cleaning", got[0].Name)
}
