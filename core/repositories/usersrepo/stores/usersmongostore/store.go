package usersmongostore

import (
	"context"
	"errors"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersrepo"
	"github.com/jrazmi/taskline/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "users"

// Indexes are created by mongodb.EnsureIndexes at startup.
var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
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

func (s *Store) Create(ctx context.Context, user usersrepo.User) error {
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	return s.findOne(ctx, bson.M{"_id": userID})
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (usersrepo.User, error) {
	var user usersrepo.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return usersrepo.User{}, storeError(err)
	}
	return user, nil
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
