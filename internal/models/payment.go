package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the record of one completed external charge.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID     string             `bson:"bookingId" json:"bookingId" binding:"required"`
	TransactionID string             `bson:"transactionId" json:"transactionId" binding:"required"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// PaymentIntentRequest carries the booking price the client wants to pay.
type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}
