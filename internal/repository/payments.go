package repository

import (
	"context"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepo struct {
	coll *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{coll: db.Collection(CollectionPayments)}
}

func (r *PaymentRepo) Insert(ctx context.Context, p *models.Payment) (primitive.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert payment: %w", err)
	}
	return p.ID, nil
}
