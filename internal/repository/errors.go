package repository

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateBooking means the caller already holds a booking for the treatment on that date.
	ErrDuplicateBooking = errors.New("duplicate booking for email, date and treatment")
	// ErrSlotTaken means another booking already holds the slot for the treatment on that date.
	ErrSlotTaken    = errors.New("slot already booked")
	ErrDuplicateKey = errors.New("duplicate key")
)

// classifyWriteError maps unique-index violations to the sentinel errors
// above. ok is false for every other error, which callers wrap as is.
func classifyWriteError(err error) (sentinel error, ok bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return nil, false
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, IndexBookingSlot):
		return ErrSlotTaken, true
	case strings.Contains(msg, IndexBookingOwner):
		return ErrDuplicateBooking, true
	default:
		return ErrDuplicateKey, true
	}
}
