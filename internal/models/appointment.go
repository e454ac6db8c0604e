package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TreatmentOption is a clinic service with its full catalog of bookable slots.
type TreatmentOption struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Slots []string           `bson:"slots" json:"slots"`
	Price float64            `bson:"price" json:"price"`
}

// Specialty is the name-only projection of a TreatmentOption.
type Specialty struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// HasSlot reports whether label is part of the option's catalog.
func (o TreatmentOption) HasSlot(label string) bool {
	for _, s := range o.Slots {
		if s == label {
			return true
		}
	}
	return false
}
