package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profession struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Active bool               `bson:"active" json:"active"`

	// Owner reference. Early documents predate ownership tracking and may
	// not carry it at all.
	CreatedBy primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`

	Category string `bson:"category,omitempty" json:"category,omitempty"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
