package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceReview ties a review to the reservation it came from.
type ServiceReview struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDService     primitive.ObjectID `bson:"id_service" json:"id_service"`
	IDReservation primitive.ObjectID `bson:"id_reservation" json:"id_reservation"`
	IDReview      primitive.ObjectID `bson:"id_review" json:"id_review"`

	Calification string `bson:"calification" json:"calification"`
}
