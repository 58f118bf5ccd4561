package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"main/usecase"

	"github.com/gin-gonic/gin"
)

func newTaskTestRouter(authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if authed {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", "test-user")
		})
	}

	h := NewTaskHandler(usecase.NewTaskService(nil))
	router.POST("/tasks", h.CreateTask)
	return router
}

func TestCreateTaskRejectsWithoutUser(t *testing.T) {
	router := newTaskTestRouter(false)

	w := postJSON(router, "/tasks", `{"title": "회의 준비"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	router := newTaskTestRouter(true)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"title":`},
		{name: "blank title", body: `{"title": "   "}`},
		{name: "title too long", body: `{"title": "` + strings.Repeat("가", 201) + `"}`},
		{name: "description too long", body: `{"title": "ok", "description": "` + strings.Repeat("가", 1001) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/tasks", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestParseDue(t *testing.T) {
	if due := parseDue("", ""); !due.IsZero() {
		t.Errorf("empty date should stay zero, got %v", due)
	}

	due := parseDue("2026-03-11", "")
	if due.Year() != 2026 || due.Month() != time.March || due.Day() != 11 {
		t.Errorf("got %v", due)
	}

	due = parseDue("2026-03-11", "15:30")
	if due.Hour() != 15 || due.Minute() != 30 {
		t.Errorf("got %v", due)
	}

	due = parseDue("2026-03-11T15:30:00Z", "")
	if due.Hour() != 15 || !due.Equal(time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)) {
		t.Errorf("got %v", due)
	}

	if due := parseDue("tomorrow", ""); !due.IsZero() {
		t.Errorf("unparsable date should stay zero, got %v", due)
	}
}
