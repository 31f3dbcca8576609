package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo defaults.
const (
	DefaultDatabase   = "facetgrid"
	DefaultCollection = "layouts"
)

// MongoStore stores documents in a MongoDB collection. Expiry is enforced by a
// TTL index on expires_at as well as on read.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored shape. The layout is kept as JSON text so its
// custom encodings (edge sets, selections) survive unchanged.
type mongoRecord struct {
	ID        string     `bson:"_id"`
	InputHash string     `bson:"input_hash"`
	Layout    string     `bson:"layout"`
	CreatedAt time.Time  `bson:"created_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoStore connects to uri and prepares the layouts collection in
// database (DefaultDatabase when empty).
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(DefaultCollection)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "input_hash", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	if ValidateID(id) != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": id}, nil)
}

func (s *MongoStore) FindByInputHash(ctx context.Context, inputHash string) (*Document, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.findOne(ctx, bson.M{"input_hash": inputHash}, opts)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*Document, error) {
	var rec mongoRecord
	var err error
	if opts != nil {
		err = s.coll.FindOne(ctx, filter, opts).Decode(&rec)
	} else {
		err = s.coll.FindOne(ctx, filter).Decode(&rec)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find layout: %w", err)
	}
	doc, err := rec.document()
	if err != nil {
		return nil, err
	}
	if doc.IsExpired() {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *MongoStore) Put(ctx context.Context, doc *Document) error {
	if err := ValidateID(doc.ID); err != nil {
		return err
	}
	rec, err := newMongoRecord(doc)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store layout: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func newMongoRecord(doc *Document) (mongoRecord, error) {
	data, err := json.Marshal(doc.Layout)
	if err != nil {
		return mongoRecord{}, fmt.Errorf("marshal layout: %w", err)
	}
	return mongoRecord{
		ID:        doc.ID,
		InputHash: doc.InputHash,
		Layout:    string(data),
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

func (r mongoRecord) document() (*Document, error) {
	doc := &Document{
		ID:        r.ID,
		InputHash: r.InputHash,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
	if err := json.Unmarshal([]byte(r.Layout), &doc.Layout); err != nil {
		return nil, fmt.Errorf("parse stored layout: %w", err)
	}
	return doc, nil
}

var _ Store = (*MongoStore)(nil)
