package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskfixer/servicios-api/internal/apperr"
)

// Record is the slice of a stored document that authorization and
// safe-delete need: identity, owner reference in canonical form, and the
// active flag.
type Record struct {
	ID       string
	OwnerRef string
	Active   bool
}

func storeErr(err error) error {
	return apperr.Upstream("database error", err)
}

// findRecord loads a document by id and normalizes its owner reference.
// Older service documents recorded the owner under id_profesional instead
// of created_by.
func findRecord(ctx context.Context, coll *mongo.Collection, id, notFoundMsg string) (*Record, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(notFoundMsg)
		}
		return nil, storeErr(err)
	}

	owner := HexOf(doc["created_by"])
	if owner == "" {
		owner = HexOf(doc["id_profesional"])
	}
	active, _ := doc["active"].(bool)

	return &Record{ID: oid.Hex(), OwnerRef: owner, Active: active}, nil
}

// countDependents runs the dependency census: one query covering both
// reference encodings. Zero dependents is a valid result, not an error.
func countDependents(ctx context.Context, coll *mongo.Collection, field, parentID string) (int64, error) {
	filter, err := RefEither(field, parentID)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}
