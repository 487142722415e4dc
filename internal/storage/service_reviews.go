package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
)

type ServiceReviewStore interface {
	Insert(ctx context.Context, sr *models.ServiceReview) (*models.ServiceReview, error)
	FindAll(ctx context.Context) ([]models.ServiceReview, error)
	FindByID(ctx context.Context, id string) (*models.ServiceReview, error)
	Remove(ctx context.Context, id string) error
}

type mongoServiceReviewStore struct {
	coll *mongo.Collection
}

func NewServiceReviewStore(db *mongo.Database) ServiceReviewStore {
	return &mongoServiceReviewStore{coll: db.Collection(CollServiceReviews)}
}

func (s *mongoServiceReviewStore) Insert(ctx context.Context, sr *models.ServiceReview) (*models.ServiceReview, error) {
	res, err := s.coll.InsertOne(ctx, sr)
	if err != nil {
		return nil, storeErr(err)
	}
	sr.ID = res.InsertedID.(primitive.ObjectID)
	return sr, nil
}

func (s *mongoServiceReviewStore) FindAll(ctx context.Context) ([]models.ServiceReview, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.ServiceReview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoServiceReviewStore) FindByID(ctx context.Context, id string) (*models.ServiceReview, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	var sr models.ServiceReview
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&sr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("service review not found")
		}
		return nil, storeErr(err)
	}
	return &sr, nil
}

func (s *mongoServiceReviewStore) Remove(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("service review not found")
	}
	return nil
}
