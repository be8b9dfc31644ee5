// Package tasksmongostore stores tasks as MongoDB documents. Lookups always
// filter on {_id, owner_id}, and updates use FindOneAndUpdate so the match and
// the write are a single atomic document operation.
package tasksmongostore

import (
	"context"
	"errors"
	"time"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the tasks collection.
const Collection = "tasks"

// Store provides document access for Task.
type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
}

// NewStore creates a new Task store over db.
func NewStore(log *logger.Logger, db *mongo.Database) *Store {
	return &Store{
		log:  log,
		coll: db.Collection(Collection),
	}
}

// Indexes are created by mongodb.EnsureIndexes at startup.
var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}}},
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, ownerID string) ([]tasksrepo.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, storeError(err)
	}

	tasks := make([]tasksrepo.Task, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, ownerID, taskID string) (tasksrepo.Task, error) {
	var task tasksrepo.Task
	if err := s.coll.FindOne(ctx, key(ownerID, taskID)).Decode(&task); err != nil {
		return tasksrepo.Task{}, storeError(err)
	}
	return task, nil
}

func (s *Store) Update(ctx context.Context, ownerID, taskID string, patch tasksrepo.TaskPatch, updatedAt time.Time) (tasksrepo.Task, error) {
	set := bson.M{"updated_at": updatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.StartDate != nil {
		set["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["end_date"] = *patch.EndDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task tasksrepo.Task
	err := s.coll.FindOneAndUpdate(ctx, key(ownerID, taskID), bson.M{"$set": set}, opts).Decode(&task)
	if err != nil {
		return tasksrepo.Task{}, storeError(err)
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, ownerID, taskID string) error {
	res, err := s.coll.DeleteOne(ctx, key(ownerID, taskID))
	if err != nil {
		return storeError(err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func key(ownerID, taskID string) bson.M {
	return bson.M{"_id": taskID, "owner_id": ownerID}
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
