package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Lastname string             `bson:"lastname" json:"lastname"`
	Email    string             `bson:"email" json:"email"`

	Active       bool `bson:"active" json:"active"`
	Admin        bool `bson:"admin" json:"admin"`
	Professional bool `bson:"professional" json:"professional"`

	// Link to the identity-provider account. The password itself is never
	// persisted locally.
	FirebaseUID string `bson:"firebase_uid,omitempty" json:"-"`
}
