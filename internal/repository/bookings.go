package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo struct {
	coll *mongo.Collection
}

func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{coll: db.Collection(CollectionBookings)}
}

// Insert stores b and returns its new id. Unique-index violations come back
// as ErrDuplicateBooking or ErrSlotTaken, so the insert itself is the
// conflict check.
func (r *BookingRepo) Insert(ctx context.Context, b *models.Booking) (primitive.ObjectID, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if sentinel, ok := classifyWriteError(err); ok {
			return primitive.NilObjectID, sentinel
		}
		return primitive.NilObjectID, fmt.Errorf("failed to insert booking: %w", err)
	}
	return b.ID, nil
}

func (r *BookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"appointmentDate": date})
}

func (r *BookingRepo) FindByOwner(ctx context.Context, email, date, treatment string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{
		"email":           email,
		"appointmentDate": date,
		"treatment":       treatment,
	})
}

func (r *BookingRepo) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: 1}}))
}

func (r *BookingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", id.Hex(), err)
	}
	return &b, nil
}

// MarkPaid flips paid to true and stores the transaction id. It only matches
// unpaid bookings, so it reports false for a missing or already paid booking.
func (r *BookingRepo) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (bool, error) {
	filter := bson.M{"_id": id, "paid": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking %s paid: %w", id.Hex(), err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *BookingRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
