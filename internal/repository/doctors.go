package repository

import (
	"context"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorRepo struct {
	coll *mongo.Collection
}

func NewDoctorRepo(db *mongo.Database) *DoctorRepo {
	return &DoctorRepo{coll: db.Collection(CollectionDoctors)}
}

func (r *DoctorRepo) Insert(ctx context.Context, d *models.Doctor) (primitive.ObjectID, error) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert doctor: %w", err)
	}
	return d.ID, nil
}

func (r *DoctorRepo) All(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// Delete removes the doctor and returns ErrNotFound when nothing matched.
func (r *DoctorRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
