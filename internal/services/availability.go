package services

import (
	"context"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"golang.org/x/sync/errgroup"
)

// ComputeAvailability returns a copy of options where each option's slots
// exclude those already consumed on date by a booking for that treatment.
// Catalog order is preserved; a fully booked option has an empty, non-nil
// slot list. Inputs are never modified.
func ComputeAvailability(date string, options []models.TreatmentOption, bookings []models.Booking) []models.TreatmentOption {
	booked := make(map[string]map[string]struct{})
	for _, b := range bookings {
		if b.AppointmentDate != date {
			continue
		}
		slots, ok := booked[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]models.TreatmentOption, 0, len(options))
	for _, opt := range options {
		taken := booked[opt.Name]
		remaining := make([]string, 0, len(opt.Slots))
		for _, slot := range opt.Slots {
			if _, ok := taken[slot]; !ok {
				remaining = append(remaining, slot)
			}
		}
		opt.Slots = remaining
		out = append(out, opt)
	}
	return out
}

type AvailabilityService struct {
	options  OptionStore
	bookings BookingStore
}

func NewAvailabilityService(options OptionStore, bookings BookingStore) *AvailabilityService {
	return &AvailabilityService{options: options, bookings: bookings}
}

// Available loads the catalog and the day's bookings concurrently and
// returns the remaining slots per treatment.
func (s *AvailabilityService) Available(ctx context.Context, date string) ([]models.TreatmentOption, error) {
	if date == "" {
		return nil, apperrors.Validation("date query parameter is required")
	}

	var (
		options  []models.TreatmentOption
		bookings []models.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		options, err = s.options.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.FindByDate(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load availability for %s: %w", date, err)
	}

	return ComputeAvailability(date, options, bookings), nil
}

func (s *AvailabilityService) Specialties(ctx context.Context) ([]models.Specialty, error) {
	specialties, err := s.options.Specialties(ctx)
	if err != nil {
		return nil, fmt.Errorf("load specialties: %w", err)
	}
	return specialties, nil
}
