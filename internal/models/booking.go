package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the string encoding of Booking.AppointmentDate.
const DateLayout = "2006-01-02"

type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email           string             `bson:"email" json:"email" binding:"required,email"`
	Patient         string             `bson:"patient,omitempty" json:"patient,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Treatment       string             `bson:"treatment" json:"treatment" binding:"required"`
	AppointmentDate string             `bson:"appointmentDate" json:"appointmentDate" binding:"required,apptdate"`
	Slot            string             `bson:"slot" json:"slot" binding:"required"`
	Price           float64            `bson:"price" json:"price" binding:"gte=0"`
	Paid            bool               `bson:"paid" json:"paid"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// clientDateLayout is the long form the web client sends ("Jan 2, 2006").
const clientDateLayout = "Jan 2, 2006"

// ValidAppointmentDate reports whether s is an ISO date or the client's long form.
// Dates are compared as strings everywhere else, so no normalisation happens here.
func ValidAppointmentDate(s string) bool {
	for _, layout := range []string{DateLayout, clientDateLayout} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
