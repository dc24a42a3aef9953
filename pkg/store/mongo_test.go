package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/matzehuels/bracket/pkg/errors"
)

func tournamentDoc(id, name string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "createdAt", Value: created},
		{Key: "rounds", Value: bson.A{
			bson.D{
				{Key: "name", Value: "Final"},
				{Key: "matches", Value: bson.A{
					bson.D{
						{Key: "id", Value: "match1"},
						{Key: "team1", Value: bson.D{{Key: "name", Value: "Ajax"}, {Key: "score", Value: 2.0}}},
						{Key: "team2", Value: bson.D{{Key: "name", Value: "PSV"}, {Key: "score", Value: 1.0}}},
						{Key: "winner", Value: 1},
					},
				}},
			},
		}},
	}
}

func TestMongoStoreGet(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes the document", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.tournaments", mtest.FirstBatch,
			tournamentDoc("t1", "Eredivisie Cup", created)))

		got, err := s.Get(context.Background(), "t1")
		require.NoError(t, err)
		assert.Equal(t, "t1", got.ID)
		assert.Equal(t, "Eredivisie Cup", got.Name)
		require.Len(t, got.Rounds, 1)
		champ, ok := got.Rounds[0].Matches[0].WinningTeam()
		assert.True(t, ok)
		assert.Equal(t, "Ajax", champ.Name)
	})

	mt.Run("missing document is NOT_FOUND", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.tournaments", mtest.FirstBatch))

		_, err := s.Get(context.Background(), "nope")
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
	})

	mt.Run("server error is STORE_ERROR", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		_, err := s.Get(context.Background(), "t1")
		assert.True(t, errors.Is(err, errors.ErrCodeStore), "got %v", err)
	})
}

func TestMongoStoreList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns every document", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		newer := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		first := mtest.CreateCursorResponse(1, "test.tournaments", mtest.FirstBatch, tournamentDoc("b", "Newer", newer))
		second := mtest.CreateCursorResponse(1, "test.tournaments", mtest.NextBatch, tournamentDoc("a", "Older", older))
		killCursors := mtest.CreateCursorResponse(0, "test.tournaments", mtest.NextBatch)
		mt.AddMockResponses(first, second, killCursors)

		all, err := s.List(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Newer", all[0].Name)
		assert.Equal(t, "Older", all[1].Name)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.tournaments", mtest.FirstBatch))

		all, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})
}

func TestMongoStoreCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns an id", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := s.Create(context.Background(), sampleTournament(t, "Inserted"))
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	mt.Run("duplicate id", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		tour := sampleTournament(t, "Dup")
		tour.ID = "dup"
		_, err := s.Create(context.Background(), tour)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidID), "got %v", err)
	})

	mt.Run("invalid input never reaches the server", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		_, err := s.Create(context.Background(), sampleTournament(t, ""))
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	})
}

func TestMongoStoreUpdateDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update matched", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		assert.NoError(t, s.Update(context.Background(), "t1", Patch{Name: String("Renamed")}))
	})

	mt.Run("update missing", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		err := s.Update(context.Background(), "t1", Patch{Name: String("Renamed")})
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(t, s.Delete(context.Background(), "t1"))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := s.Delete(context.Background(), "t1")
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
	})
}

// TestMongoStoreIntegration runs the shared contract against a real server.
func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("BRACKET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BRACKET_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "bracket_test"})
	require.NoError(t, err)
	defer func() {
		_ = s.Collection.Drop(ctx)
		_ = s.Close(ctx)
	}()

	id, err := s.Create(ctx, sampleTournament(t, "Live"))
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, id, Patch{Description: String("integration")}))
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "integration", got.Description)
	require.NoError(t, s.Delete(ctx, id))
}
