package storage

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskfixer/servicios-api/internal/apperr"
)

// OID parses a 24-hex identifier, resolving failures to a BadRequest before
// any store round trip.
func OID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("invalid id")
	}
	return oid, nil
}

// HexOf normalizes a reference value read from a document to its canonical
// hex string form. Owner and foreign-key fields have been written both as
// ObjectIds and as strings over the life of the data set.
func HexOf(v interface{}) string {
	switch ref := v.(type) {
	case primitive.ObjectID:
		return ref.Hex()
	case string:
		return strings.ToLower(strings.TrimSpace(ref))
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", ref)
	}
}

// RefEither builds a single filter matching field stored under either
// encoding of the given id. Used for every dependency count and reference
// lookup; callers never assume one encoding.
func RefEither(field, hex string) (bson.M, error) {
	oid, err := OID(hex)
	if err != nil {
		return nil, err
	}
	return bson.M{"$or": bson.A{
		bson.M{field: oid},
		bson.M{field: oid.Hex()},
	}}, nil
}

// refEitherExpr is the aggregation-stage counterpart of RefEither: matches
// localField (which may hold an ObjectId or a hex string) against the
// variables bound to the parent's _id and its string form.
func refEitherExpr(localField string) bson.M {
	return bson.M{"$expr": bson.M{"$or": bson.A{
		bson.M{"$eq": bson.A{localField, "$$refId"}},
		bson.M{"$eq": bson.A{localField, "$$refIdStr"}},
	}}}
}

func refLetVars() bson.M {
	return bson.M{
		"refId":    "$_id",
		"refIdStr": bson.M{"$toString": "$_id"},
	}
}
