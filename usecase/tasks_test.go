package usecase

import (
	"strings"
	"testing"
	"time"

	"main/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		task    model.Task
		wantErr error
		check   func(t *testing.T, task *model.Task)
	}{
		{
			name:    "empty title rejected",
			task:    model.Task{Title: "   "},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "title over 200 runes rejected",
			task:    model.Task{Title: strings.Repeat("가", 201)},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "description over 1000 runes rejected",
			task:    model.Task{Title: "ok", Description: strings.Repeat("가", 1001)},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name: "title trimmed",
			task: model.Task{Title: "  회의 준비  "},
			check: func(t *testing.T, task *model.Task) {
				if task.Title != "회의 준비" {
					t.Errorf("title = %q", task.Title)
				}
			},
		},
		{
			name: "out-of-range priority coerced",
			task: model.Task{Title: "ok", Priority: 9},
			check: func(t *testing.T, task *model.Task) {
				if task.Priority != model.PriorityMedium {
					t.Errorf("priority = %d", task.Priority)
				}
			},
		},
		{
			name: "zero priority coerced",
			task: model.Task{Title: "ok"},
			check: func(t *testing.T, task *model.Task) {
				if task.Priority != model.PriorityMedium {
					t.Errorf("priority = %d", task.Priority)
				}
			},
		},
		{
			name: "tags cleaned and capped",
			task: model.Task{Title: "ok", Tags: []string{" 업무 ", "", "개인", "건강", "공부"}},
			check: func(t *testing.T, task *model.Task) {
				if len(task.Tags) != model.MaxTags || task.Tags[0] != "업무" {
					t.Errorf("tags = %v", task.Tags)
				}
			},
		},
		{
			name: "unknown status becomes pending",
			task: model.Task{Title: "ok", Status: "archived"},
			check: func(t *testing.T, task *model.Task) {
				if task.Status != model.StatusPending {
					t.Errorf("status = %q", task.Status)
				}
			},
		},
		{
			name: "completed status kept",
			task: model.Task{Title: "ok", Status: model.StatusCompleted},
			check: func(t *testing.T, task *model.Task) {
				if task.Status != model.StatusCompleted {
					t.Errorf("status = %q", task.Status)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := normalize(&tt.task)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, &tt.task)
		})
	}
}

func TestDraftDue(t *testing.T) {
	loc := time.UTC

	if due := draftDue(&model.TaskDraft{}, loc); !due.IsZero() {
		t.Errorf("no date should stay zero, got %v", due)
	}

	due := draftDue(&model.TaskDraft{DueDate: "2026-03-11"}, loc)
	if want := time.Date(2026, 3, 11, 0, 0, 0, 0, loc); !due.Equal(want) {
		t.Errorf("got %v, want %v", due, want)
	}

	due = draftDue(&model.TaskDraft{DueDate: "2026-03-11", DueTime: "15:00"}, loc)
	if want := time.Date(2026, 3, 11, 15, 0, 0, 0, loc); !due.Equal(want) {
		t.Errorf("got %v, want %v", due, want)
	}

	if due := draftDue(&model.TaskDraft{DueDate: "not-a-date"}, loc); !due.IsZero() {
		t.Errorf("unparsable date should stay zero, got %v", due)
	}
}
