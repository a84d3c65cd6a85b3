package migrations

import (
	"context"
	"testing"
	"time"

	"GuardTrack/config"
	db "GuardTrack/config/db"
	"GuardTrack/models"
	"GuardTrack/role"
	"GuardTrack/testutil"
	"GuardTrack/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDesiredIndexes(t *testing.T) {
	idx := desiredIndexes()
	for _, coll := range []string{util.UserCollection, util.GuardCollection} {
		names := map[string]bool{}
		for _, m := range idx[coll] {
			if m.Options != nil && m.Options.Name != nil && m.Options.Unique != nil && *m.Options.Unique {
				names[*m.Options.Name] = true
			}
		}
		assert.True(t, names["uniq_username"], coll)
		assert.True(t, names["uniq_email"], coll)
	}
	require.Len(t, idx[util.LocationCollection], 1)
	assert.True(t, *idx[util.LocationCollection][0].Options.Unique)
}

func TestRun(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	legacy := primitive.NewObjectID()
	_, err := db.OpenCollections(util.GuardCollection).InsertOne(ctx, bson.M{
		"_id": legacy, "username": "old", "email": "old@guards.com",
	})
	require.NoError(t, err)

	cfg := &config.Config{
		LiveLocTTL:    time.Hour,
		AdminUsername: "Root",
		AdminEmail:    "root@mail.com",
		AdminPassword: "rootpass",
	}
	require.NoError(t, Run(ctx, cfg))

	guard := models.Guard{}
	require.NoError(t, db.FindOne(ctx, db.OpenCollections(util.GuardCollection), bson.M{"_id": legacy}, &guard))
	assert.False(t, guard.IsApproved)
	assert.Equal(t, 0, guard.WorkPercent)
	assert.Empty(t, guard.WorkHistory)
	n, err := db.Count(ctx, db.OpenCollections(util.GuardCollection), bson.M{"workHistory": bson.M{"$exists": true}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	admin := models.User{}
	require.NoError(t, db.FindOne(ctx, db.OpenCollections(util.UserCollection), bson.M{"username": "root"}, &admin))
	assert.Equal(t, role.Admin, admin.Role)

	// a second run changes nothing and tolerates a new retention window
	cfg.LiveLocTTL = 2 * time.Hour
	require.NoError(t, Run(ctx, cfg))
	n, err = db.Count(ctx, db.OpenCollections(util.UserCollection), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// the unique index rejects a second guard with the same username
	_, err = db.OpenCollections(util.GuardCollection).InsertOne(ctx, bson.M{"username": "old", "email": "new@guards.com"})
	assert.True(t, db.IsDuplicate(err))
}

func TestSeedAdmin_NotConfigured(t *testing.T) {
	created, err := SeedAdmin(context.Background(), AdminSeed{Username: "x"})
	require.NoError(t, err)
	assert.False(t, created)
}
