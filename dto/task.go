package dto

import (
	"time"

	"main/model"
)

type TaskResponse struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Status       model.Status `json:"status"`
	Priority     int          `json:"priority"`
	Tags         []string     `json:"tags,omitempty"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	TimeUntilDue string       `json:"time_until_due,omitempty"`
}

func ToTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Tags:        task.Tags,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if !task.DueDate.IsZero() {
		response.DueDate = &task.DueDate
		if !task.Completed() {
			if task.DueDate.Before(time.Now()) {
				response.TimeUntilDue = "Overdue"
			} else {
				response.TimeUntilDue = time.Until(task.DueDate).Round(time.Hour).String()
			}
		}
	}

	return response
}

func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
