package analytics

import (
	"math"
	"time"

	"main/model"
)

// Week buckets are anchored on Sunday (weekday index 0), matching the
// Sunday-first convention the daily breakdown is keyed by.
var dayNames = [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// DayName returns the Korean day-of-week name for t.
func DayName(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

// Window is a half-open [Start, End) time span.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// PeriodWindows returns the current and comparison windows for a period,
// anchored on now. "today" runs midnight-to-midnight against yesterday;
// "week" runs from the most recent Sunday midnight against the prior week.
func PeriodWindows(period model.Period, now time.Time) (current, previous Window) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case model.PeriodWeek:
		weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
		current = Window{Start: weekStart, End: weekStart.AddDate(0, 0, 7)}
		previous = Window{Start: weekStart.AddDate(0, 0, -7), End: weekStart}
	default:
		current = Window{Start: midnight, End: midnight.AddDate(0, 0, 1)}
		previous = Window{Start: midnight.AddDate(0, 0, -1), End: midnight}
	}
	return current, previous
}

// inWindow reports whether a task belongs to a window: either its creation
// time or its due date falls inside the span.
func inWindow(t *model.Task, w Window) bool {
	if w.Contains(t.CreatedAt) {
		return true
	}
	return !t.DueDate.IsZero() && w.Contains(t.DueDate)
}

// percent computes an integer percentage, rounded half up. Zero denominators
// yield zero.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Aggregate computes the analytics snapshot for a record set and period. Pure
// function of its inputs; now is injected so windows are reproducible.
func Aggregate(tasks []*model.Task, period model.Period, now time.Time) *model.AnalyticsSnapshot {
	current, previous := PeriodWindows(period, now)

	var windowed []*model.Task
	for _, t := range tasks {
		if inWindow(t, current) {
			windowed = append(windowed, t)
		}
	}

	if len(windowed) == 0 {
		return emptySnapshot(period)
	}

	snap := &model.AnalyticsSnapshot{
		Period:             period,
		Total:              len(windowed),
		PriorityAnalysis:   map[string]*model.BucketStat{},
		HourlyProductivity: map[int]*model.BucketStat{},
		TagAnalysis:        map[string]*model.BucketStat{},
		Tasks:              windowed,
	}
	if period == model.PeriodWeek {
		snap.DailyProductivity = map[string]*model.BucketStat{}
	}

	var compliant, postponed int
	for _, t := range windowed {
		done := t.Completed()
		if done {
			snap.Completed++
			if t.DueDate.IsZero() || !t.UpdatedAt.After(t.DueDate) {
				compliant++
			}
		} else {
			snap.Pending++
			if t.Priority == model.PriorityHigh {
				snap.Urgent++
			}
			if !t.DueDate.IsZero() && t.DueDate.Before(now) {
				snap.Overdue++
			}
		}

		// Postponed means "touched after its deadline while still open"; a
		// task whose due date was pushed back counts as postponed too.
		if t.UpdatedAt.After(t.CreatedAt) && !done &&
			!t.DueDate.IsZero() && t.UpdatedAt.After(t.DueDate) {
			postponed++
		}

		bump(snap.PriorityAnalysis, priorityName(t.Priority), done)
		if !t.DueDate.IsZero() {
			bumpHour(snap.HourlyProductivity, t.DueDate.Hour(), done)
		}
		for _, tag := range t.Tags {
			bump(snap.TagAnalysis, tag, done)
		}
		if snap.DailyProductivity != nil {
			day := t.CreatedAt
			if !t.DueDate.IsZero() {
				day = t.DueDate
			}
			bump(snap.DailyProductivity, DayName(day), done)
		}
	}

	snap.CompletionRate = percent(snap.Completed, snap.Total)
	snap.DeadlineComplianceRate = percent(compliant, snap.Completed)
	snap.PostponementRate = percent(postponed, snap.Total)

	prevTotal, prevCompleted := 0, 0
	for _, t := range tasks {
		if inWindow(t, previous) {
			prevTotal++
			if t.Completed() {
				prevCompleted++
			}
		}
	}
	snap.PreviousCompletionRate = percent(prevCompleted, prevTotal)
	snap.RateChange = snap.CompletionRate - snap.PreviousCompletionRate

	return snap
}

func emptySnapshot(period model.Period) *model.AnalyticsSnapshot {
	snap := &model.AnalyticsSnapshot{
		Period:             period,
		PriorityAnalysis:   map[string]*model.BucketStat{},
		HourlyProductivity: map[int]*model.BucketStat{},
		TagAnalysis:        map[string]*model.BucketStat{},
	}
	if period == model.PeriodWeek {
		snap.DailyProductivity = map[string]*model.BucketStat{}
	}
	return snap
}

func priorityName(p int) string {
	switch model.NormalizePriority(p) {
	case model.PriorityHigh:
		return "high"
	case model.PriorityLow:
		return "low"
	default:
		return "medium"
	}
}

func bump(buckets map[string]*model.BucketStat, key string, completed bool) {
	stat, ok := buckets[key]
	if !ok {
		stat = &model.BucketStat{}
		buckets[key] = stat
	}
	stat.Total++
	if completed {
		stat.Completed++
	}
}

func bumpHour(buckets map[int]*model.BucketStat, hour int, completed bool) {
	stat, ok := buckets[hour]
	if !ok {
		stat = &model.BucketStat{}
		buckets[hour] = stat
	}
	stat.Total++
	if completed {
		stat.Completed++
	}
}
