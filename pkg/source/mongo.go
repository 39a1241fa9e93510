package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notewerk/blocktree/pkg/block"
)

// MongoSource serves graphs stored in a MongoDB collection. Each
// document holds one graph in its JSON wire form:
//
//	{"_id": "getting-started", "graph": "<graph JSON>"}
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSource connects to MongoDB and binds to db/collection.
// The connection is verified with a ping before returning.
func NewMongoSource(ctx context.Context, uri, db, collection string) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}
	return &MongoSource{
		client: client,
		coll:   client.Database(db).Collection(collection),
	}, nil
}

type graphDoc struct {
	ID    string `bson:"_id"`
	Graph []byte `bson:"graph"`
}

// List returns all document IDs in the collection, sorted.
func (s *MongoSource) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc graphDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

// Load fetches and decodes one graph document.
func (s *MongoSource) Load(ctx context.Context, id string) (block.Graph, error) {
	var doc graphDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return block.ReadGraph(bytes.NewReader(doc.Graph))
}

// Close disconnects from MongoDB.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
