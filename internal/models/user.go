package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only role that unlocks privileged operations; an empty role is a regular user.
const RoleAdmin = "admin"

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email" json:"email" binding:"required,email"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}
