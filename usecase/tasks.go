package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("description cannot exceed 1000 characters")
)

type TaskService struct {
	Repo *repository.TasksRepo
}

func NewTaskService(repo *repository.TasksRepo) *TaskService {
	return &TaskService{Repo: repo}
}

// normalize enforces the task invariants in place: trimmed non-empty title,
// length caps, priority coerced into range, tags cleaned and capped.
func normalize(task *model.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(task.Title) > model.MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(task.Description) > model.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	task.Priority = model.NormalizePriority(task.Priority)
	task.Tags = model.CleanTags(task.Tags)
	if task.Status != model.StatusCompleted {
		task.Status = model.StatusPending
	}
	return nil
}

func (svc *TaskService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := normalize(task); err != nil {
		return err
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}
	return svc.Repo.CreateTask(ctx, task)
}

func (svc *TaskService) GetUserTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]*model.Task, error) {
	return svc.Repo.GetUserTasks(ctx, userID, filter)
}

// AllUserTasks fetches the unfiltered record set, newest first; analytics
// windows the records in memory.
func (svc *TaskService) AllUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return svc.Repo.GetUserTasks(ctx, userID, model.TaskFilter{})
}

func (svc *TaskService) GetTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	return svc.Repo.GetTaskByID(ctx, taskID, userID)
}

// UpdateTask applies updates to an owned task and returns the stored result.
// Concurrent edits are last-write-wins.
func (svc *TaskService) UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) (*model.Task, error) {
	existing, err := svc.Repo.GetTaskByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(updates.Title) == "" {
		updates.Title = existing.Title
	}
	if updates.Status == "" {
		updates.Status = existing.Status
	}
	if updates.Priority == 0 {
		updates.Priority = existing.Priority
	}
	if err := normalize(updates); err != nil {
		return nil, err
	}

	if err := svc.Repo.UpdateTask(ctx, taskID, userID, updates); err != nil {
		return nil, err
	}
	return svc.Repo.GetTaskByID(ctx, taskID, userID)
}

func (svc *TaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	return svc.Repo.DeleteTask(ctx, taskID, userID)
}

// TaskFromDraft turns a parser draft into an insertable task. Draft fields
// are already repaired, so failures here only come from the store.
func (svc *TaskService) TaskFromDraft(ctx context.Context, userID string, draft *model.TaskDraft) (*model.Task, error) {
	task := &model.Task{
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      model.StatusPending,
		Priority:    draft.Priority,
		Tags:        draft.Tags,
		DueDate:     draftDue(draft, time.Now().Location()),
	}
	if err := svc.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func draftDue(draft *model.TaskDraft, loc *time.Location) time.Time {
	if draft.DueDate == "" {
		return time.Time{}
	}
	layout, value := "2006-01-02", draft.DueDate
	if draft.DueTime != "" {
		layout, value = "2006-01-02 15:04", draft.DueDate+" "+draft.DueTime
	}
	due, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return due
}
