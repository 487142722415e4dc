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

type ReservationServiceStore interface {
	Insert(ctx context.Context, rs *models.ReservationService) (*models.ReservationService, error)
	FindAll(ctx context.Context) ([]models.ReservationService, error)
	FindByID(ctx context.Context, id string) (*models.ReservationService, error)
	Update(ctx context.Context, id string, rs *models.ReservationService) (*models.ReservationService, error)
	Remove(ctx context.Context, id string) error
}

type mongoReservationServiceStore struct {
	coll *mongo.Collection
}

func NewReservationServiceStore(db *mongo.Database) ReservationServiceStore {
	return &mongoReservationServiceStore{coll: db.Collection(CollReservationServices)}
}

func (s *mongoReservationServiceStore) Insert(ctx context.Context, rs *models.ReservationService) (*models.ReservationService, error) {
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, rs)
	if err != nil {
		return nil, storeErr(err)
	}
	rs.ID = res.InsertedID.(primitive.ObjectID)
	return rs, nil
}

func (s *mongoReservationServiceStore) FindAll(ctx context.Context) ([]models.ReservationService, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.ReservationService{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoReservationServiceStore) FindByID(ctx context.Context, id string) (*models.ReservationService, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	var rs models.ReservationService
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("reservation service not found")
		}
		return nil, storeErr(err)
	}
	return &rs, nil
}

func (s *mongoReservationServiceStore) Update(ctx context.Context, id string, rs *models.ReservationService) (*models.ReservationService, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"id_reservation":      rs.IDReservation,
		"id_service_offering": rs.IDServiceOffering,
		"quantity":            rs.Quantity,
		"notes":               rs.Notes,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ReservationService
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("reservation service not found")
		}
		return nil, storeErr(err)
	}
	return &updated, nil
}

func (s *mongoReservationServiceStore) Remove(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("reservation service not found")
	}
	return nil
}
