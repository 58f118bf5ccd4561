package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrTaskNotFound is returned when a task does not exist or is not owned by
// the calling user; the two cases are indistinguishable on purpose.
var ErrTaskNotFound = errors.New("task not found")

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TASKS_COLLECTION")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if task.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}
	return nil
}

// GetUserTasks translates the list-view filter into a query. All filters are
// owner-scoped; search matches title or description case-insensitively.
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	query := bson.M{"user_id": userID}
	if filter.Status == string(model.StatusPending) || filter.Status == string(model.StatusCompleted) {
		query["status"] = filter.Status
	}
	if filter.Priority >= model.PriorityHigh && filter.Priority <= model.PriorityLow {
		query["priority"] = filter.Priority
	}
	if filter.Search != "" {
		pattern := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}

	opts := options.Find().SetSort(sortSpec(filter))
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	return tasks, nil
}

func sortSpec(filter model.TaskFilter) bson.D {
	key := "created_at"
	switch filter.SortBy {
	case model.SortByDue:
		key = "due_date"
	case model.SortByTitle:
		key = "title"
	case model.SortByPriority:
		key = "priority"
	}

	dir := -1
	if filter.SortOrder == "asc" {
		dir = 1
	}
	return bson.D{{Key: key, Value: dir}}
}

func (r *TasksRepo) GetTaskByID(ctx context.Context, taskID, userID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": taskID, "user_id": userID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTaskNotFound
		}
		utils.TrackError("database", "task_lookup_failed")
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces the mutable fields of an owned task. Last write wins;
// there is no optimistic-concurrency check.
func (r *TasksRepo) UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	set := bson.M{
		"title":       updates.Title,
		"description": updates.Description,
		"status":      updates.Status,
		"priority":    updates.Priority,
		"tags":        updates.Tags,
		"due_date":    updates.DueDate,
		"updated_at":  time.Now(),
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}

	if updates.Status == model.StatusCompleted {
		utils.TrackTaskCompletion()
	}
	return nil
}

func (r *TasksRepo) DeleteTask(ctx context.Context, taskID, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": taskID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}
	return nil
}
