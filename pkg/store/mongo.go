package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/cache"
	bracketerrors "github.com/matzehuels/bracket/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "bracket"
	DefaultMongoCollection = "tournaments"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps tournaments in a MongoDB collection keyed by _id.
// Network failures and timeouts are retried with backoff.
type MongoStore struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	now        func() time.Time
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, bracketerrors.New(bracketerrors.ErrCodeInvalidInput, "mongo: uri required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "mongo connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, bracketerrors.Wrap(bracketerrors.ErrCodeNetwork, err, "mongo ping")
	}
	return NewMongoStoreFromCollection(client, client.Database(cfg.Database).Collection(cfg.Collection)), nil
}

// NewMongoStoreFromCollection wraps an existing collection. client may be
// nil, in which case Close does nothing.
func NewMongoStoreFromCollection(client *mongo.Client, coll *mongo.Collection) *MongoStore {
	return &MongoStore{Client: client, Collection: coll, now: time.Now}
}

func (s *MongoStore) List(ctx context.Context) ([]bracket.Tournament, error) {
	var out []bracket.Tournament
	err := s.retry(ctx, "list", func() error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
		cur, err := s.Collection.Find(ctx, bson.D{}, opts)
		if err != nil {
			return err
		}
		out = out[:0]
		return cur.All(ctx, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []bracket.Tournament{}
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (bracket.Tournament, error) {
	var t bracket.Tournament
	err := s.retry(ctx, "fetch", func() error {
		return s.Collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&t)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bracket.Tournament{}, notFound(id)
	}
	if err != nil {
		return bracket.Tournament{}, err
	}
	return t, nil
}

func (s *MongoStore) Create(ctx context.Context, t bracket.Tournament) (string, error) {
	t, err := prepare(t, s.now())
	if err != nil {
		return "", err
	}
	err = s.retry(ctx, "create", func() error {
		_, err := s.Collection.InsertOne(ctx, t)
		return err
	})
	if mongo.IsDuplicateKeyError(err) {
		return "", bracketerrors.New(bracketerrors.ErrCodeInvalidID, "tournament %q already exists", t.ID)
	}
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	set := bson.D{{Key: "updatedAt", Value: s.now()}}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Rounds != nil {
		set = append(set, bson.E{Key: "rounds", Value: p.Rounds})
	}

	var matched int64
	err := s.retry(ctx, "update", func() error {
		res, err := s.Collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
		if err != nil {
			return err
		}
		matched = res.MatchedCount
		return nil
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	var deleted int64
	err := s.retry(ctx, "delete", func() error {
		res, err := s.Collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

// retry runs fn with backoff on transient failures and maps driver errors
// to coded errors. ErrNoDocuments and duplicate keys pass through untouched
// so callers can translate them.
func (s *MongoStore) retry(ctx context.Context, op string, fn func() error) error {
	err := cache.RetryWithBackoff(ctx, func() error {
		err := fn()
		if err != nil && (mongo.IsNetworkError(err) || mongo.IsTimeout(err)) {
			return cache.Retryable(err)
		}
		return err
	})
	if err == nil || errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err) {
		return err
	}
	if cache.IsRetryable(err) {
		if mongo.IsTimeout(err) {
			return bracketerrors.Wrap(bracketerrors.ErrCodeTimeout, errors.Unwrap(err), "mongo %s", op)
		}
		return bracketerrors.Wrap(bracketerrors.ErrCodeNetwork, errors.Unwrap(err), "mongo %s", op)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "mongo %s", op)
}

var _ Store = (*MongoStore)(nil)
