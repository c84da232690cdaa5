package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexRequestCollection())
	panicIfError(m.IndexConversationCollection())
}

func (m *MongoDBIndexer) IndexRequestCollection() error {
	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"geo": "2dsphere",
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "created_at", Value: 1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"requester": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"helper": 1,
		},
	})
}

// IndexConversationCollection enforces one conversation per request
func (m *MongoDBIndexer) IndexConversationCollection() error {
	if err := m.createIndex(ConversationCollection, mongo.IndexModel{
		Keys: bson.M{
			"request_id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if err := m.createIndex(ConversationCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "requester", Value: 1},
			{Key: "is_active", Value: 1},
		},
	}); err != nil {
		return err
	}

	return m.createIndex(ConversationCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "helper", Value: 1},
			{Key: "is_active", Value: 1},
		},
	})
}
