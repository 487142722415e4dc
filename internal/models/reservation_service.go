package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReservationService links one reservation to one service offering.
type ReservationService struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDReservation     primitive.ObjectID `bson:"id_reservation" json:"id_reservation"`
	IDServiceOffering primitive.ObjectID `bson:"id_service_offering" json:"id_service_offering"`

	Quantity int    `bson:"quantity" json:"quantity"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
