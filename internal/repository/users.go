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

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(CollectionUsers)}
}

// FindByEmail returns nil without error when no user has that email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	return &u, nil
}

// Upsert inserts the profile on first sign-in. An existing profile keeps its
// role; only the display name is refreshed.
func (r *UserRepo) Upsert(ctx context.Context, u *models.User) (*mongo.UpdateResult, error) {
	update := bson.M{"$setOnInsert": bson.M{"email": u.Email}}
	if u.Name != "" {
		update["$set"] = bson.M{"name": u.Name}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": u.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", u.Email, err)
	}
	return res, nil
}

func (r *UserRepo) All(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// PromoteAdmin sets role=admin on the user with id, creating the document if absent.
func (r *UserRepo) PromoteAdmin(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to promote user %s: %w", id.Hex(), err)
	}
	return res, nil
}
