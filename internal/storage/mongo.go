// Package storage is the adapter over the MongoDB document store. Query
// helpers here must stay tolerant of both historical reference encodings
// (ObjectId and hex string).
package storage

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollUsers               = "users"
	CollProfessions         = "profession"
	CollServiceOfferings    = "service_offering"
	CollReservations        = "reservations"
	CollReservationServices = "reservation_service"
	CollReviews             = "reviews"
	CollServiceReviews      = "service_review"
)

const serverSelectionTimeout = 10 * time.Second

var (
	connectOnce sync.Once
	client      *mongo.Client
	connectErr  error
)

// Connect dials the store on first use and returns the same client for the
// life of the process.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectOnce.Do(func() {
		api := options.ServerAPI(options.ServerAPIVersion1)
		opts := options.Client().
			ApplyURI(uri).
			SetServerAPIOptions(api).
			SetServerSelectionTimeout(serverSelectionTimeout)
		client, connectErr = mongo.Connect(ctx, opts)
	})
	return client, connectErr
}

// Ping verifies connectivity for readiness checks.
func Ping(ctx context.Context, c *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, serverSelectionTimeout)
	defer cancel()
	return c.Ping(ctx, readpref.Primary())
}
