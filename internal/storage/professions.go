package storage

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
)

// ProfessionUsage is a profession with its dependent-service count, produced
// by the encoding-agnostic lookup pipeline.
type ProfessionUsage struct {
	ID               string `bson:"id" json:"id"`
	Name             string `bson:"name" json:"name"`
	Active           bool   `bson:"active" json:"active"`
	NumberOfServices int64  `bson:"number_of_services" json:"number_of_services"`
}

type ProfessionStore interface {
	Insert(ctx context.Context, p *models.Profession) (*models.Profession, error)
	FindByID(ctx context.Context, id string) (*models.Profession, error)
	List(ctx context.Context, includeInactive bool, skip, limit int64) ([]models.Profession, error)
	Search(ctx context.Context, term string, skip, limit int64) ([]models.Profession, error)
	PublicList(ctx context.Context, name, category string) ([]models.Profession, error)
	ListWithServiceCount(ctx context.Context) ([]ProfessionUsage, error)
	Usage(ctx context.Context, id string) (*ProfessionUsage, error)
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)
	ExistsActive(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id, name string, active bool) (*models.Profession, error)

	// Safe-delete primitives.
	FindRecord(ctx context.Context, id string) (*Record, error)
	CountDependents(ctx context.Context, id string) (int64, error)
	Deactivate(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

type mongoProfessionStore struct {
	coll     *mongo.Collection
	services *mongo.Collection
}

func NewProfessionStore(db *mongo.Database) ProfessionStore {
	return &mongoProfessionStore{
		coll:     db.Collection(CollProfessions),
		services: db.Collection(CollServiceOfferings),
	}
}

func (s *mongoProfessionStore) Insert(ctx context.Context, p *models.Profession) (*models.Profession, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return nil, storeErr(err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (s *mongoProfessionStore) FindByID(ctx context.Context, id string) (*models.Profession, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	var p models.Profession
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("profession not found")
		}
		return nil, storeErr(err)
	}
	return &p, nil
}

func (s *mongoProfessionStore) List(ctx context.Context, includeInactive bool, skip, limit int64) ([]models.Profession, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["active"] = true
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.Profession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoProfessionStore) Search(ctx context.Context, term string, skip, limit int64) ([]models.Profession, error) {
	filter := bson.M{
		"name":   primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(term)), Options: "i"},
		"active": true,
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.Profession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoProfessionStore) PublicList(ctx context.Context, name, category string) ([]models.Profession, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(name)), Options: "i"}
	}
	if category != "" {
		filter["category"] = category
	}

	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.Profession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// servicesLookup joins service_offering documents whose id_profession matches
// under either encoding.
func servicesLookup() bson.M {
	return bson.M{"$lookup": bson.M{
		"from":     CollServiceOfferings,
		"let":      refLetVars(),
		"pipeline": bson.A{bson.M{"$match": refEitherExpr("$id_profession")}},
		"as":       "services",
	}}
}

func usageProjection() bson.M {
	return bson.M{"$project": bson.M{
		"_id":                0,
		"id":                 bson.M{"$toString": "$_id"},
		"name":               1,
		"active":             1,
		"number_of_services": bson.M{"$size": "$services"},
	}}
}

func (s *mongoProfessionStore) ListWithServiceCount(ctx context.Context) ([]ProfessionUsage, error) {
	pipeline := bson.A{
		servicesLookup(),
		usageProjection(),
		bson.M{"$sort": bson.M{"name": 1}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []ProfessionUsage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoProfessionStore) Usage(ctx context.Context, id string) (*ProfessionUsage, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	pipeline := bson.A{
		bson.M{"$match": bson.M{"_id": oid}},
		servicesLookup(),
		usageProjection(),
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []ProfessionUsage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("profession not found")
	}
	return &out[0], nil
}

func (s *mongoProfessionStore) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	filter := bson.M{
		"name": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$",
			Options: "i",
		},
	}
	if excludeID != "" {
		oid, err := OID(excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

func (s *mongoProfessionStore) ExistsActive(ctx context.Context, id string) (bool, error) {
	oid, err := OID(id)
	if err != nil {
		return false, err
	}
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": oid, "active": true})
	if err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

func (s *mongoProfessionStore) Update(ctx context.Context, id, name string, active bool) (*models.Profession, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":       strings.TrimSpace(name),
		"active":     active,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Profession
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("profession not found")
		}
		return nil, storeErr(err)
	}
	return &p, nil
}

func (s *mongoProfessionStore) FindRecord(ctx context.Context, id string) (*Record, error) {
	return findRecord(ctx, s.coll, id, "profession not found")
}

func (s *mongoProfessionStore) CountDependents(ctx context.Context, id string) (int64, error) {
	return countDependents(ctx, s.services, "id_profession", id)
}

func (s *mongoProfessionStore) Deactivate(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}}
	if _, err := s.coll.UpdateByID(ctx, oid, update); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *mongoProfessionStore) Remove(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("profession not found")
	}
	return nil
}
