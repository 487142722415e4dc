package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDUser            primitive.ObjectID `bson:"id_user" json:"id_user"`
	IDServiceOffering primitive.ObjectID `bson:"id_service_offering" json:"id_service_offering"`

	Opinion string  `bson:"opinion" json:"opinion"`
	Rating  float64 `bson:"rating" json:"rating"` // 0-5

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// ReviewStats is the $group result of the per-service rating pipeline.
type ReviewStats struct {
	IDServiceOffering string  `bson:"id_service_offering" json:"id_service_offering"`
	AverageRating     float64 `bson:"average_rating" json:"average_rating"`
	Count             int64   `bson:"count" json:"count"`
}
