package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kmnair/farmlog/internal/records"
)

// Collection names match the original data layout so an existing
// database keeps working.
const (
	harvestCollection  = "harvestRecords"
	rainfallCollection = "rainfallData"
	intervalCollection = "customIntervals"
)

// Connect dials MongoDB and verifies the connection. The returned
// client is owned by the caller and passed into the stores at
// construction; nothing here keeps global state.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

var dateDescending = options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

// MongoHarvestStore implements records.HarvestStore on a MongoDB
// collection. The caller-supplied record id is stored as _id, so
// duplicate detection rides on the collection's key constraint.
type MongoHarvestStore struct {
	coll *mongo.Collection
}

// NewMongoHarvestStore creates a harvest store on db.
func NewMongoHarvestStore(db *mongo.Database) *MongoHarvestStore {
	return &MongoHarvestStore{coll: db.Collection(harvestCollection)}
}

func (s *MongoHarvestStore) List(ctx context.Context) ([]records.HarvestRecord, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, dateDescending)
	if err != nil {
		return nil, fmt.Errorf("list harvest records: %w", err)
	}
	recs := []records.HarvestRecord{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode harvest records: %w", err)
	}
	return recs, nil
}

func (s *MongoHarvestStore) Create(ctx context.Context, rec records.HarvestRecord) (records.HarvestRecord, error) {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return records.HarvestRecord{}, records.ErrDuplicateID
		}
		return records.HarvestRecord{}, fmt.Errorf("insert harvest record: %w", err)
	}
	return rec, nil
}

// MongoRainfallStore implements records.RainfallStore on a MongoDB
// collection.
type MongoRainfallStore struct {
	coll *mongo.Collection
}

// NewMongoRainfallStore creates a rainfall store on db.
func NewMongoRainfallStore(db *mongo.Database) *MongoRainfallStore {
	return &MongoRainfallStore{coll: db.Collection(rainfallCollection)}
}

func (s *MongoRainfallStore) List(ctx context.Context) ([]records.RainfallRecord, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, dateDescending)
	if err != nil {
		return nil, fmt.Errorf("list rainfall records: %w", err)
	}
	recs := []records.RainfallRecord{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode rainfall records: %w", err)
	}
	return recs, nil
}

func (s *MongoRainfallStore) Create(ctx context.Context, rec records.RainfallRecord) (records.RainfallRecord, error) {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return records.RainfallRecord{}, records.ErrDuplicateID
		}
		return records.RainfallRecord{}, fmt.Errorf("insert rainfall record: %w", err)
	}
	return rec, nil
}

// MongoIntervalStore implements records.IntervalStore on a MongoDB
// collection.
type MongoIntervalStore struct {
	coll *mongo.Collection
}

// NewMongoIntervalStore creates an interval store on db.
func NewMongoIntervalStore(db *mongo.Database) *MongoIntervalStore {
	return &MongoIntervalStore{coll: db.Collection(intervalCollection)}
}

func (s *MongoIntervalStore) List(ctx context.Context) ([]records.CustomInterval, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list custom intervals: %w", err)
	}
	recs := []records.CustomInterval{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode custom intervals: %w", err)
	}
	return recs, nil
}

func (s *MongoIntervalStore) Create(ctx context.Context, rec records.CustomInterval) (records.CustomInterval, error) {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return records.CustomInterval{}, records.ErrDuplicateID
		}
		return records.CustomInterval{}, fmt.Errorf("insert custom interval: %w", err)
	}
	return rec, nil
}
