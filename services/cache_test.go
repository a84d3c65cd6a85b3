package services

import (
	"context"
	"testing"

	db "GuardTrack/config/db"
	"GuardTrack/models"
	"GuardTrack/testutil"
	"GuardTrack/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func setupWithCache(t *testing.T) context.Context {
	t.Helper()
	ctx := setup(t)
	testutil.SetupTestRedis(t)
	return ctx
}

func TestGuardDetail_Cache(t *testing.T) {
	ctx := setupWithCache(t)
	admin := registerUser(t, ctx, "warden")
	user := registerUser(t, ctx, "tina")
	guard := registerApprovedGuard(t, ctx, "uma")
	id := guard.ID.Hex()
	guards := db.OpenCollections(util.GuardCollection)

	first, err := GetGuardDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Guard.WorkPercent)

	// a write that skips the services is not seen while the entry is cached
	_, err = db.UpdateOne(ctx, guards, bson.M{"_id": guard.ID}, bson.M{"$set": bson.M{"workPercent": 40}})
	require.NoError(t, err)
	cached, err := GetGuardDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.Guard.WorkPercent)

	t.Run("toggle approval invalidates", func(t *testing.T) {
		_, err := ToggleApproval(ctx, id)
		require.NoError(t, err)
		detail, err := GetGuardDetail(ctx, id)
		require.NoError(t, err)
		assert.False(t, detail.Guard.IsApproved)
		assert.Equal(t, 40, detail.Guard.WorkPercent)

		_, err = ToggleApproval(ctx, id)
		require.NoError(t, err)
	})

	t.Run("assign location invalidates", func(t *testing.T) {
		detail, err := GetGuardDetail(ctx, id)
		require.NoError(t, err)
		require.Nil(t, detail.Location)

		_, err = AssignLocation(ctx, admin.ID.Hex(), models.AssignLocationRequest{
			GuardID: id, Name: "North gate", Latitude: ptr(1), Longitude: ptr(2),
		})
		require.NoError(t, err)
		detail, err = GetGuardDetail(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, detail.Location)
		assert.Equal(t, "North gate", detail.Location.Name)
	})

	t.Run("feedback invalidates", func(t *testing.T) {
		_, err := CreateComplain(ctx, user.ID.Hex(), models.ComplainRequest{GuardID: id, Complain: "rude"})
		require.NoError(t, err)
		detail, err := GetGuardDetail(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), detail.Complaints)

		_, err = CreateAppreciation(ctx, user.ID.Hex(), models.AppreciationRequest{GuardID: id, Message: "kind"})
		require.NoError(t, err)
		detail, err = GetGuardDetail(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), detail.Appreciations)
	})
}

func TestLatestPing_ServedFromCache(t *testing.T) {
	ctx := setupWithCache(t)
	admin := registerUser(t, ctx, "marshal")
	guard := registerApprovedGuard(t, ctx, "vera")
	_, err := AssignLocation(ctx, admin.ID.Hex(), models.AssignLocationRequest{
		GuardID: guard.ID.Hex(), Name: "Dock", Latitude: ptr(5), Longitude: ptr(5),
	})
	require.NoError(t, err)

	ping, err := RecordPing(ctx, guard.ID.Hex(), models.LivePingRequest{Latitude: ptr(5), Longitude: ptr(5)})
	require.NoError(t, err)

	// with the stored pings gone only the cache can answer
	require.NoError(t, db.OpenCollections(util.LivePingCollection).Drop(ctx))

	latest, err := LatestPing(ctx, guard.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, ping.ID, latest.ID)
	assert.True(t, latest.WithinZone)

	report := Health(ctx)
	assert.Equal(t, StatusUp, report.Redis)
}
