package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
)

type ServiceOfferingStore interface {
	Insert(ctx context.Context, so *models.ServiceOffering) (*models.ServiceOffering, error)
	ListEnriched(ctx context.Context, activeOnly bool) ([]models.ServiceOfferingView, error)
	GetEnriched(ctx context.Context, id string) (*models.ServiceOfferingView, error)
	Update(ctx context.Context, id string, so *models.ServiceOffering) error
	Exists(ctx context.Context, id string) (bool, error)

	// Safe-delete primitives. Dependents live in reservation_service.
	FindRecord(ctx context.Context, id string) (*Record, error)
	CountDependents(ctx context.Context, id string) (int64, error)
	Deactivate(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

type mongoServiceOfferingStore struct {
	coll         *mongo.Collection
	reservations *mongo.Collection
}

func NewServiceOfferingStore(db *mongo.Database) ServiceOfferingStore {
	return &mongoServiceOfferingStore{
		coll:         db.Collection(CollServiceOfferings),
		reservations: db.Collection(CollReservationServices),
	}
}

func (s *mongoServiceOfferingStore) Insert(ctx context.Context, so *models.ServiceOffering) (*models.ServiceOffering, error) {
	res, err := s.coll.InsertOne(ctx, so)
	if err != nil {
		return nil, storeErr(err)
	}
	so.ID = res.InsertedID.(primitive.ObjectID)
	return so, nil
}

// professionLookup resolves the owning profession regardless of how
// id_profession was encoded when the document was written.
func professionLookup() bson.A {
	return bson.A{
		bson.M{"$lookup": bson.M{
			"from": CollProfessions,
			"let":  bson.M{"pid": "$id_profession"},
			"pipeline": bson.A{bson.M{"$match": bson.M{"$expr": bson.M{"$or": bson.A{
				bson.M{"$eq": bson.A{"$_id", "$$pid"}},
				bson.M{"$eq": bson.A{bson.M{"$toString": "$_id"}, "$$pid"}},
			}}}}},
			"as": "profession",
		}},
		bson.M{"$unwind": bson.M{"path": "$profession", "preserveNullAndEmptyArrays": true}},
		bson.M{"$project": bson.M{
			"_id":                0,
			"id":                 bson.M{"$toString": "$_id"},
			"id_profession":      bson.M{"$toString": bson.M{"$ifNull": bson.A{"$id_profession", ""}}},
			"profession_name":    "$profession.name",
			"description":        1,
			"estimated_price":    1,
			"estimated_duration": 1,
			"active":             1,
			"created_by":         bson.M{"$toString": bson.M{"$ifNull": bson.A{"$created_by", ""}}},
		}},
	}
}

func (s *mongoServiceOfferingStore) ListEnriched(ctx context.Context, activeOnly bool) ([]models.ServiceOfferingView, error) {
	match := bson.M{}
	if activeOnly {
		match["active"] = true
	}
	pipeline := append(bson.A{bson.M{"$match": match}}, professionLookup()...)
	pipeline = append(pipeline, bson.M{"$sort": bson.M{"profession_name": 1, "description": 1}})

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.ServiceOfferingView{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoServiceOfferingStore) GetEnriched(ctx context.Context, id string) (*models.ServiceOfferingView, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	pipeline := append(bson.A{bson.M{"$match": bson.M{"_id": oid}}}, professionLookup()...)

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.ServiceOfferingView{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("service not found")
	}
	return &out[0], nil
}

func (s *mongoServiceOfferingStore) Update(ctx context.Context, id string, so *models.ServiceOffering) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"id_profession":      so.IDProfession,
		"description":        so.Description,
		"estimated_price":    so.EstimatedPrice,
		"estimated_duration": so.EstimatedDuration,
		"active":             so.Active,
	}}
	res, err := s.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}

func (s *mongoServiceOfferingStore) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := OID(id)
	if err != nil {
		return false, err
	}
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

func (s *mongoServiceOfferingStore) FindRecord(ctx context.Context, id string) (*Record, error) {
	return findRecord(ctx, s.coll, id, "service not found")
}

func (s *mongoServiceOfferingStore) CountDependents(ctx context.Context, id string) (int64, error) {
	return countDependents(ctx, s.reservations, "id_service_offering", id)
}

func (s *mongoServiceOfferingStore) Deactivate(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	if _, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"active": false}}); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *mongoServiceOfferingStore) Remove(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}
