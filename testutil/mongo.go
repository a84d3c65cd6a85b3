// Package testutil wires tests to a throwaway mongo database.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	db "GuardTrack/config/db"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoURIEnv names the variable holding the test server address.
const MongoURIEnv = "GUARDTRACK_TEST_MONGO_URI"

// SetupTestDB points config/db at a fresh database and drops it when the
// test ends. The test is skipped when no mongo server is configured or
// reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(MongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set, skipping mongo test", MongoURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo not reachable: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo not reachable: %v", err)
	}

	name := fmt.Sprintf("guardtrack_test_%s", primitive.NewObjectID().Hex())
	prevClient, prevDB := db.Client, db.DB
	db.Use(client, name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Database(name).Drop(ctx)
		_ = client.Disconnect(ctx)
		db.Client, db.DB = prevClient, prevDB
	})
	return db.DB
}
