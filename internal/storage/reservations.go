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

type ReservationStore interface {
	Insert(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	Update(ctx context.Context, id string, r *models.Reservation) (*models.Reservation, error)
	Remove(ctx context.Context, id string) error
}

type mongoReservationStore struct {
	coll *mongo.Collection
}

func NewReservationStore(db *mongo.Database) ReservationStore {
	return &mongoReservationStore{coll: db.Collection(CollReservations)}
}

func (s *mongoReservationStore) Insert(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
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

func (s *mongoReservationStore) FindAll(ctx context.Context) ([]models.Reservation, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	out := []models.Reservation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *mongoReservationStore) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	var r models.Reservation
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("reservation not found")
		}
		return nil, storeErr(err)
	}
	return &r, nil
}

// Update replaces the mutable fields; id and created_at never change.
func (s *mongoReservationStore) Update(ctx context.Context, id string, r *models.Reservation) (*models.Reservation, error) {
	oid, err := OID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"id_user":          r.IDUser,
		"reservation_date": r.ReservationDate,
		"status":           r.Status,
		"notes":            r.Notes,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Reservation
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("reservation not found")
		}
		return nil, storeErr(err)
	}
	return &updated, nil
}

func (s *mongoReservationStore) Remove(ctx context.Context, id string) error {
	oid, err := OID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("reservation not found")
	}
	return nil
}
