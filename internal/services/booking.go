package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/harentsoaR/smile-care-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BookingDecision is the outcome of TryCreateBooking. An accepted decision
// means: persist the candidate, then notify.
type BookingDecision struct {
	Accepted bool
	Reason   string
}

// Err returns nil for an accepted decision and a Conflict otherwise.
func (d BookingDecision) Err() error {
	if d.Accepted {
		return nil
	}
	return apperrors.Conflict(d.Reason)
}

// TryCreateBooking rejects the candidate when existingForSameKey, already
// filtered on email, appointment date and treatment, is non-empty. The slot
// plays no part in the decision.
func TryCreateBooking(candidate models.Booking, existingForSameKey []models.Booking) BookingDecision {
	if len(existingForSameKey) > 0 {
		return BookingDecision{Reason: duplicateBookingMessage(candidate.AppointmentDate)}
	}
	return BookingDecision{Accepted: true}
}

func duplicateBookingMessage(date string) string {
	return fmt.Sprintf("You already have a booking on %s", date)
}

// Notifier delivers booking confirmations. Implementations must not block
// the caller and must swallow their own failures.
type Notifier interface {
	BookingConfirmed(booking models.Booking)
}

type BookingService struct {
	options  OptionStore
	bookings BookingStore
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(options OptionStore, bookings BookingStore, notifier Notifier, log *zap.Logger) *BookingService {
	return &BookingService{options: options, bookings: bookings, notifier: notifier, log: log}
}

// Create validates b against the catalog, applies the duplicate rule and
// stores it. The unique indexes on the bookings collection settle races the
// pre-check cannot see.
func (s *BookingService) Create(ctx context.Context, b *models.Booking) (primitive.ObjectID, error) {
	b.ID = primitive.NilObjectID
	b.Paid = false
	b.TransactionID = ""

	opt, err := s.options.FindByName(ctx, b.Treatment)
	if errors.Is(err, repository.ErrNotFound) {
		return primitive.NilObjectID, apperrors.Validation(fmt.Sprintf("unknown treatment %q", b.Treatment))
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("load treatment: %w", err)
	}
	if !opt.HasSlot(b.Slot) {
		return primitive.NilObjectID, apperrors.Validation(fmt.Sprintf("%q is not a slot of %s", b.Slot, opt.Name))
	}
	b.Price = opt.Price

	existing, err := s.bookings.FindByOwner(ctx, b.Email, b.AppointmentDate, b.Treatment)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("check existing bookings: %w", err)
	}
	if err := TryCreateBooking(*b, existing).Err(); err != nil {
		return primitive.NilObjectID, err
	}

	id, err := s.bookings.Insert(ctx, b)
	switch {
	case errors.Is(err, repository.ErrDuplicateBooking):
		return primitive.NilObjectID, apperrors.Conflict(duplicateBookingMessage(b.AppointmentDate))
	case errors.Is(err, repository.ErrSlotTaken):
		return primitive.NilObjectID, apperrors.Conflict(
			fmt.Sprintf("%s at %s on %s is already booked", b.Treatment, b.Slot, b.AppointmentDate))
	case errors.Is(err, repository.ErrDuplicateKey):
		return primitive.NilObjectID, apperrors.Conflict("booking already exists")
	case err != nil:
		return primitive.NilObjectID, fmt.Errorf("insert booking: %w", err)
	}
	b.ID = id

	s.log.Info("booking created",
		zap.String("bookingId", id.Hex()),
		zap.String("treatment", b.Treatment),
		zap.String("date", b.AppointmentDate),
		zap.String("slot", b.Slot),
	)
	s.notifier.BookingConfirmed(*b)
	return id, nil
}

// ListForCaller returns the bookings of requestedEmail if the caller is that user.
func (s *BookingService) ListForCaller(ctx context.Context, callerEmail, requestedEmail string) ([]models.Booking, error) {
	if !CanViewBookings(callerEmail, requestedEmail) {
		return nil, apperrors.Forbidden("forbidden access")
	}
	bookings, err := s.bookings.FindByEmail(ctx, requestedEmail)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) Get(ctx context.Context, hexID string) (*models.Booking, error) {
	id, err := parseID("booking", hexID)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("booking")
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func invalidID(resource, hex string) error {
	return apperrors.Validation(fmt.Sprintf("invalid %s id %q", resource, hex))
}
