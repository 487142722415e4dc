package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceOffering is what a professional publishes under a profession.
// New documents store id_profession and created_by as ObjectIds; older ones
// stored them as hex strings, so reads that care about references go through
// the aggregation views or the dual-encoding filter in storage.
type ServiceOffering struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDProfession primitive.ObjectID `bson:"id_profession" json:"id_profession"`

	Description       string  `bson:"description" json:"description"`
	EstimatedPrice    float64 `bson:"estimated_price" json:"estimated_price"`
	EstimatedDuration string  `bson:"estimated_duration" json:"estimated_duration"`

	Active    bool               `bson:"active" json:"active"`
	CreatedBy primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// ServiceOfferingView is the listing shape produced by the profession lookup
// pipeline. All references are projected to their string form.
type ServiceOfferingView struct {
	ID                string  `bson:"id" json:"id"`
	IDProfession      string  `bson:"id_profession" json:"id_profession"`
	ProfessionName    string  `bson:"profession_name" json:"profession_name"`
	Description       string  `bson:"description" json:"description"`
	EstimatedPrice    float64 `bson:"estimated_price" json:"estimated_price"`
	EstimatedDuration string  `bson:"estimated_duration" json:"estimated_duration"`
	Active            bool    `bson:"active" json:"active"`
	CreatedBy         string  `bson:"created_by" json:"created_by"`
}
