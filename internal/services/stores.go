package services

import (
	"context"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// The store interfaces below are implemented by internal/repository.

type OptionStore interface {
	All(ctx context.Context) ([]models.TreatmentOption, error)
	FindByName(ctx context.Context, name string) (*models.TreatmentOption, error)
	Specialties(ctx context.Context) ([]models.Specialty, error)
}

type BookingStore interface {
	Insert(ctx context.Context, b *models.Booking) (primitive.ObjectID, error)
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	FindByOwner(ctx context.Context, email, date, treatment string) ([]models.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (bool, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) (*mongo.UpdateResult, error)
	All(ctx context.Context) ([]models.User, error)
	PromoteAdmin(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) (primitive.ObjectID, error)
}

type DoctorStore interface {
	Insert(ctx context.Context, d *models.Doctor) (primitive.ObjectID, error)
	All(ctx context.Context) ([]models.Doctor, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Transactor runs fn atomically. The context handed to fn must be used for
// every store call made inside it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// parseID converts a hex path parameter into an ObjectID.
func parseID(resource, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, invalidID(resource, hex)
	}
	return id, nil
}
