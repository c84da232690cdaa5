package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/schema"
)

const maxMutateAttempts = 5

// Requests - interface for the request documents
type Requests interface {
	CreateRequest(r *schema.Request) error
	GetRequest(id primitive.ObjectID) (*schema.Request, error)
	MutateRequest(id primitive.ObjectID, mutate func(*schema.Request) error) (*schema.Request, error)
	DeleteRequest(id primitive.ObjectID, version int64) error
	NearbyRequests(loc schema.Location, distance int, limit int64) ([]schema.Request, error)
	ListAccountRequests(accountID string) ([]schema.Request, error)
	ExpirePendingRequests(createdBefore time.Time) (int64, error)
}

// CreateRequest inserts a new request and fills in its id
func (m *mongoDB) CreateRequest(r *schema.Request) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.Version = 1

	if _, err := m.collection(schema.RequestCollection).InsertOne(ctx, r); err != nil {
		return err
	}
	return nil
}

// GetRequest finds a request by id
func (m *mongoDB) GetRequest(id primitive.ObjectID) (*schema.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var r schema.Request
	if err := m.collection(schema.RequestCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, lifecycle.ErrRequestNotFound
		}
		return nil, err
	}
	return &r, nil
}

// MutateRequest applies a transition on the latest copy of a request and
// commits it only if nobody else wrote in between. On a version mismatch the
// document is read again and the transition re-validated, so the loser of a
// race observes the winner's state. A transition returning
// lifecycle.ErrUnchanged is not written and the current copy is returned with
// its version untouched.
func (m *mongoDB) MutateRequest(id primitive.ObjectID, mutate func(*schema.Request) error) (*schema.Request, error) {
	c := m.collection(schema.RequestCollection)

	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		r, err := m.GetRequest(id)
		if err != nil {
			return nil, err
		}

		version := r.Version
		if err := mutate(r); err != nil {
			if err == lifecycle.ErrUnchanged {
				return r, nil
			}
			return nil, err
		}
		if err := lifecycle.CheckInvariants(r); err != nil {
			return nil, err
		}
		r.Version = version + 1

		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		result, err := c.ReplaceOne(ctx, bson.M{"_id": id, "version": version}, r)
		cancel()
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 1 {
			return r, nil
		}

		log.WithFields(log.Fields{
			"prefix":     mongoLogPrefix,
			"request_id": id.Hex(),
			"version":    version,
			"attempt":    attempt + 1,
		}).Debug("request version changed during update, retrying")
	}

	return nil, lifecycle.ErrConcurrentUpdate
}

// DeleteRequest removes a request only if it is still at the given version
func (m *mongoDB) DeleteRequest(id primitive.ObjectID, version int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.collection(schema.RequestCollection).DeleteOne(ctx, bson.M{"_id": id, "version": version})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return lifecycle.ErrConcurrentUpdate
	}
	return nil
}

// NearbyRequests finds pending requests from nearest to farthest
func (m *mongoDB) NearbyRequests(loc schema.Location, distance int, limit int64) ([]schema.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := bson.M{
		"status": schema.RequestPending,
		"geo":    nearSphereQuery(loc, distance),
	}

	cur, err := m.collection(schema.RequestCollection).Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("query nearby requests with error: %s", err)
		return nil, err
	}

	requests := make([]schema.Request, 0)
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("nearby requests query gets %d requests", len(requests))
	return requests, nil
}

// ListAccountRequests returns the requests an account created or is helping with, newest first
func (m *mongoDB) ListAccountRequests(accountID string) ([]schema.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := bson.M{
		"$or": bson.A{
			bson.M{"requester": accountID},
			bson.M{"helper": accountID},
		},
	}

	cur, err := m.collection(schema.RequestCollection).Find(ctx, query, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}

	requests := make([]schema.Request, 0)
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ExpirePendingRequests cancels requests which nobody picked up in time
func (m *mongoDB) ExpirePendingRequests(createdBefore time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.collection(schema.RequestCollection).UpdateMany(ctx,
		bson.M{
			"status":     schema.RequestPending,
			"created_at": bson.M{"$lte": createdBefore},
		},
		bson.M{
			"$set": bson.M{
				"status":       schema.RequestCancelled,
				"cancelled_at": time.Now().UTC(),
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return 0, err
	}

	return result.ModifiedCount, nil
}

// $nearSphere provides documents from nearest to farthest
// reference: https://docs.mongodb.com/manual/reference/operator/query/nearSphere/#op._S_nearSphere
func nearSphereQuery(loc schema.Location, distance int) bson.D {
	return bson.D{{
		Key: "$nearSphere",
		Value: bson.D{{
			Key: "$geometry",
			Value: bson.D{{
				Key:   "type",
				Value: "Point",
			}, {
				Key:   "coordinates",
				Value: bson.A{loc.Longitude, loc.Latitude},
			}},
		}, {
			Key:   "$maxDistance",
			Value: distance,
		}},
	}}
}
