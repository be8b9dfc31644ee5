package usersessionsmongostore

import (
	"context"
	"errors"
	"time"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
	"github.com/jrazmi/taskline/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "user_sessions"

// Indexes are created by mongodb.EnsureIndexes at startup.
var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
	{Keys: bson.D{{Key: "expires_at", Value: 1}}},
}

type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
}

func NewStore(log *logger.Logger, db *mongo.Database) *Store {
	return &Store{
		log:  log,
		coll: db.Collection(Collection),
	}
}

func (s *Store) Create(ctx context.Context, session usersessionsrepo.UserSession) error {
	if _, err := s.coll.InsertOne(ctx, session); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) GetByTokenHash(ctx context.Context, tokenHash string) (usersessionsrepo.UserSession, error) {
	var session usersessionsrepo.UserSession
	if err := s.coll.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&session); err != nil {
		return usersessionsrepo.UserSession{}, storeError(err)
	}
	return session, nil
}

func (s *Store) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"token_hash": tokenHash}); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, storeError(err)
	}
	return res.DeletedCount, nil
}

func storeError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrDuplicate
	}
	return err
}
