package handler

import (
	"errors"
	"strconv"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	service *usecase.TaskService
}

func NewTaskHandler(service *usecase.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// taskRequest is the wire shape for create/update. Due date and time come as
// the same strings the parser emits.
type taskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    int      `json:"priority"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"due_date"`
	DueTime     string   `json:"due_time"`
}

func (req *taskRequest) toTask(userID string) *model.Task {
	return &model.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.Status(req.Status),
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     parseDue(req.DueDate, req.DueTime),
	}
}

func parseDue(date, clock string) time.Time {
	if date == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t
	}
	layout, value := "2006-01-02", date
	if clock != "" {
		layout, value = "2006-01-02 15:04", date+" "+clock
	}
	t, err := time.ParseInLocation(layout, value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isValidationErr(err error) bool {
	return errors.Is(err, usecase.ErrTitleRequired) ||
		errors.Is(err, usecase.ErrTitleTooLong) ||
		errors.Is(err, usecase.ErrDescriptionTooLong)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task := req.toTask(userID.(string))
	if err := h.service.CreateTask(c.Request.Context(), task); err != nil {
		if isValidationErr(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, dto.ToTaskResponse(task))
}

func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	priority, _ := strconv.Atoi(c.Query("priority"))
	filter := model.TaskFilter{
		Status:    c.Query("status"),
		Priority:  priority,
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", model.SortByCreated),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string), filter)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), taskID, userID.(string))
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), taskID, userID.(string), req.toTask(userID.(string)))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case isValidationErr(err):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.Success(c, dto.ToTaskResponse(updated))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted successfully"})
}
