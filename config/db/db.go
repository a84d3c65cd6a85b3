package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

var ErrNotConnected = errors.New("mongo is not connected")

/*
* Connect to mongo, ping the primary and keep the client and database
* in the package vars used by every service
 */
func Connect(ctx context.Context, uri, database string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}
	Use(client, database)
	zap.L().Info("connected to mongo", zap.String("database", database))
	return nil
}

// Use points the package at an already connected client.
func Use(client *mongo.Client, database string) {
	Client = client
	DB = client.Database(database)
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

func Ping(ctx context.Context) error {
	if Client == nil {
		return ErrNotConnected
	}
	return Client.Ping(ctx, readpref.Primary())
}

func OpenCollections(name string) *mongo.Collection {
	return DB.Collection(name)
}

/*
* Find the first document matching the filter and decode it into result
 */
func FindOne(ctx context.Context, collection *mongo.Collection, filter interface{}, result interface{}, opts ...*options.FindOneOptions) error {
	if filter == nil {
		filter = bson.M{}
	}
	return collection.FindOne(ctx, filter, opts...).Decode(result)
}

/*
* Find all documents matching the filter and decode them into results,
* which must be a pointer to a slice
 */
func FindAll(ctx context.Context, collection *mongo.Collection, filter interface{}, results interface{}, opts ...*options.FindOptions) error {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func CreateOne(ctx context.Context, collection *mongo.Collection, document interface{}) (*mongo.InsertOneResult, error) {
	return collection.InsertOne(ctx, document)
}

func UpdateOne(ctx context.Context, collection *mongo.Collection, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return collection.UpdateOne(ctx, filter, update, opts...)
}

/*
* Apply the update and decode the document as it is after the update
 */
func FindOneAndUpdate(ctx context.Context, collection *mongo.Collection, filter interface{}, update interface{}, result interface{}, upsert bool) error {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(upsert)
	return collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(result)
}

func DeleteOne(ctx context.Context, collection *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	return collection.DeleteOne(ctx, filter)
}

func Count(ctx context.Context, collection *mongo.Collection, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return collection.CountDocuments(ctx, filter)
}

/*
* Run the pipeline and decode every resulting document into results
 */
func Aggregate(ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
