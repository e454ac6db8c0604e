package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OptionRepo reads the treatment catalog.
type OptionRepo struct {
	coll *mongo.Collection
}

func NewOptionRepo(db *mongo.Database) *OptionRepo {
	return &OptionRepo{coll: db.Collection(CollectionOptions)}
}

func (r *OptionRepo) All(ctx context.Context) ([]models.TreatmentOption, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment options: %w", err)
	}
	defer cursor.Close(ctx)

	opts := make([]models.TreatmentOption, 0)
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode appointment options: %w", err)
	}
	return opts, nil
}

func (r *OptionRepo) FindByName(ctx context.Context, name string) (*models.TreatmentOption, error) {
	var opt models.TreatmentOption
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&opt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment option %q: %w", name, err)
	}
	return &opt, nil
}

// Specialties returns only the id and name of every option.
func (r *OptionRepo) Specialties(ctx context.Context) ([]models.Specialty, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find specialties: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Specialty, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode specialties: %w", err)
	}
	return out, nil
}
