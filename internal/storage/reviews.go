package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
)

type ReviewStore interface {
	Insert(ctx context.Context, r *models.Review) (*models.Review, error)
	FindAll(ctx context.Context) ([]models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, id string, r *models.Review) (*models.Review, error)
	Remove(ctx context.Context, id string) error
	StatsByService(ctx context.Context) ([]models.ReviewStats, error)
}

type mongoReviewStore struct {
	coll *mongo.Collection
}

func NewReviewStore(db *mongo.Database) ReviewStore {
	return &mongoReviewStore{coll: db.Collection(CollReviews)}
}

func (s *mongoReviewStore) Insert(ctx context.Context, r *models.Review) (*models.Review, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, r)
	if err != nil {
		return nil, storeErr(err)
	}
	r.ID = res.InsertedID.(primitive.ObjectID)
	return r, nil
}

func (s *mongoReviewStore) FindAll(ctx context.Context) ([]models.Review, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoReviewStore) FindByID(ctx context.Context, id string) (*models.Review, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	var r models.Review
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, storeErr(err)
	}
	return &r, nil
}

func (s *mongoReviewStore) Update(ctx context.Context, id string, r *models.Review) (*models.Review, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"id_user":             r.IDUser,
		"id_service_offering": r.IDServiceOffering,
		"opinion":             r.Opinion,
		"rating":              r.Rating,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Review
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, storeErr(err)
	}
	return &updated, nil
}

func (s *mongoReviewStore) Remove(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("review not found")
	}
	return nil
}

// StatsByService groups ratings per service offering. The reference is
// stringified in the group key so both encodings land in the same bucket.
func (s *mongoReviewStore) StatsByService(ctx context.Context) ([]models.ReviewStats, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{
			"_id":            bson.M{"$toString": "$id_service_offering"},
			"average_rating": bson.M{"$avg": "$rating"},
			"count":          bson.M{"$sum": 1},
		}},
		bson.M{"$project": bson.M{
			"_id":                 0,
			"id_service_offering": "$_id",
			"average_rating":      1,
			"count":               1,
		}},
		bson.M{"$sort": bson.M{"average_rating": -1}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.ReviewStats{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
