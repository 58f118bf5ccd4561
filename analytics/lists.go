package analytics

import (
	"sort"
	"time"

	"main/model"
)

const maxFocusTasks = 5

// RemainingTodos lists all pending tasks sorted by priority, highest first.
// Ties keep their original order.
func RemainingTodos(tasks []*model.Task) []model.TaskBrief {
	var pending []*model.Task
	for _, t := range tasks {
		if !t.Completed() {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return model.NormalizePriority(pending[i].Priority) < model.NormalizePriority(pending[j].Priority)
	})
	return toBriefs(pending, time.Time{})
}

// FocusTasks picks up to five pending tasks worth doing next: high priority,
// due today, or due within the next two days. Tasks due today come first,
// then by priority.
func FocusTasks(tasks []*model.Task, now time.Time) []model.TaskBrief {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)
	horizon := now.Add(48 * time.Hour)

	dueToday := func(t *model.Task) bool {
		return !t.DueDate.IsZero() && !t.DueDate.Before(midnight) && t.DueDate.Before(tomorrow)
	}

	var picked []*model.Task
	for _, t := range tasks {
		if t.Completed() {
			continue
		}
		if t.Priority == model.PriorityHigh || dueToday(t) ||
			(!t.DueDate.IsZero() && !t.DueDate.After(horizon)) {
			picked = append(picked, t)
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		ti, tj := dueToday(picked[i]), dueToday(picked[j])
		if ti != tj {
			return ti
		}
		return model.NormalizePriority(picked[i].Priority) < model.NormalizePriority(picked[j].Priority)
	})

	if len(picked) > maxFocusTasks {
		picked = picked[:maxFocusTasks]
	}
	return toBriefs(picked, midnight)
}

func toBriefs(tasks []*model.Task, midnight time.Time) []model.TaskBrief {
	briefs := make([]model.TaskBrief, 0, len(tasks))
	for _, t := range tasks {
		brief := model.TaskBrief{
			ID:       t.TaskID,
			Title:    t.Title,
			Priority: model.NormalizePriority(t.Priority),
		}
		if !t.DueDate.IsZero() {
			brief.DueDate = t.DueDate.Format("2006-01-02")
			if !midnight.IsZero() {
				brief.DueToday = !t.DueDate.Before(midnight) && t.DueDate.Before(midnight.AddDate(0, 0, 1))
			}
		}
		briefs = append(briefs, brief)
	}
	return briefs
}
