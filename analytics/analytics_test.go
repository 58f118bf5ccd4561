package analytics

import (
	"testing"
	"time"

	"main/model"
)

// Wednesday afternoon. The week window runs Sunday 2026-03-08 through
// Saturday 2026-03-14.
var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func done(created time.Time) *model.Task {
	return &model.Task{Status: model.StatusCompleted, Priority: model.PriorityMedium, CreatedAt: created, UpdatedAt: created}
}

func pending(created time.Time) *model.Task {
	return &model.Task{Status: model.StatusPending, Priority: model.PriorityMedium, CreatedAt: created, UpdatedAt: created}
}

func TestDayName(t *testing.T) {
	if got := DayName(at(11, 0)); got != "수요일" {
		t.Errorf("got %q", got)
	}
	if got := DayName(at(8, 0)); got != "일요일" {
		t.Errorf("got %q", got)
	}
}

func TestPeriodWindows(t *testing.T) {
	current, previous := PeriodWindows(model.PeriodToday, testNow)
	if !current.Start.Equal(at(11, 0)) || !current.End.Equal(at(12, 0)) {
		t.Errorf("today current = %v..%v", current.Start, current.End)
	}
	if !previous.Start.Equal(at(10, 0)) || !previous.End.Equal(at(11, 0)) {
		t.Errorf("today previous = %v..%v", previous.Start, previous.End)
	}

	current, previous = PeriodWindows(model.PeriodWeek, testNow)
	if !current.Start.Equal(at(8, 0)) || !current.End.Equal(at(15, 0)) {
		t.Errorf("week current = %v..%v", current.Start, current.End)
	}
	if !previous.Start.Equal(at(1, 0)) || !previous.End.Equal(at(8, 0)) {
		t.Errorf("week previous = %v..%v", previous.Start, previous.End)
	}
}

func TestAggregateEmpty(t *testing.T) {
	for _, period := range []model.Period{model.PeriodToday, model.PeriodWeek} {
		snap := Aggregate(nil, period, testNow)
		if snap.Total != 0 || snap.CompletionRate != 0 || snap.PostponementRate != 0 {
			t.Errorf("%s: non-zero snapshot %+v", period, snap)
		}
		if snap.PriorityAnalysis == nil || snap.HourlyProductivity == nil || snap.TagAnalysis == nil {
			t.Errorf("%s: breakdown maps should be initialized", period)
		}
	}

	if snap := Aggregate(nil, model.PeriodWeek, testNow); snap.DailyProductivity == nil {
		t.Error("week snapshot should carry a daily breakdown")
	}
	if snap := Aggregate(nil, model.PeriodToday, testNow); snap.DailyProductivity != nil {
		t.Error("today snapshot should not carry a daily breakdown")
	}
}

func TestAggregateCompletionRate(t *testing.T) {
	var tasks []*model.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, done(at(11, 9)))
	}
	for i := 0; i < 3; i++ {
		tasks = append(tasks, pending(at(11, 9)))
	}

	snap := Aggregate(tasks, model.PeriodToday, testNow)
	if snap.Total != 10 || snap.Completed != 7 || snap.Pending != 3 {
		t.Fatalf("counts = %d/%d/%d", snap.Total, snap.Completed, snap.Pending)
	}
	if snap.CompletionRate != 70 {
		t.Errorf("completion rate = %d", snap.CompletionRate)
	}
	// Completed without a due date counts as compliant.
	if snap.DeadlineComplianceRate != 100 {
		t.Errorf("compliance rate = %d", snap.DeadlineComplianceRate)
	}
}

func TestAggregateRoundsHalfUp(t *testing.T) {
	tasks := []*model.Task{done(at(11, 9)), done(at(11, 9)), pending(at(11, 9))}
	if snap := Aggregate(tasks, model.PeriodToday, testNow); snap.CompletionRate != 67 {
		t.Errorf("2/3 = %d, want 67", snap.CompletionRate)
	}

	tasks = []*model.Task{done(at(11, 9)), pending(at(11, 9)), pending(at(11, 9))}
	if snap := Aggregate(tasks, model.PeriodToday, testNow); snap.CompletionRate != 33 {
		t.Errorf("1/3 = %d, want 33", snap.CompletionRate)
	}
}

func TestAggregateUrgentAndOverdue(t *testing.T) {
	urgent := pending(at(11, 9))
	urgent.Priority = model.PriorityHigh

	overdue := pending(at(11, 9))
	overdue.DueDate = at(11, 10) // before now

	later := pending(at(11, 9))
	later.DueDate = at(11, 20)

	snap := Aggregate([]*model.Task{urgent, overdue, later}, model.PeriodToday, testNow)
	if snap.Urgent != 1 {
		t.Errorf("urgent = %d", snap.Urgent)
	}
	if snap.Overdue != 1 {
		t.Errorf("overdue = %d", snap.Overdue)
	}
}

func TestAggregateDeadlineCompliance(t *testing.T) {
	onTime := done(at(11, 9))
	onTime.DueDate = at(11, 18)
	onTime.UpdatedAt = at(11, 12)

	late := done(at(11, 9))
	late.DueDate = at(11, 10)
	late.UpdatedAt = at(11, 12)

	stillOpen := pending(at(11, 9))
	stillOpen.DueDate = at(11, 10)

	snap := Aggregate([]*model.Task{onTime, late, stillOpen}, model.PeriodToday, testNow)
	// Compliance is measured over completed tasks only.
	if snap.DeadlineComplianceRate != 50 {
		t.Errorf("compliance rate = %d", snap.DeadlineComplianceRate)
	}
}

func TestAggregatePostponement(t *testing.T) {
	postponed := pending(at(9, 9))
	postponed.DueDate = at(11, 10) // due today, so inside the window
	postponed.UpdatedAt = at(11, 14)

	untouched := pending(at(11, 9))
	untouched.DueDate = at(11, 10)

	snap := Aggregate([]*model.Task{postponed, untouched}, model.PeriodToday, testNow)
	if snap.PostponementRate != 50 {
		t.Errorf("postponement rate = %d", snap.PostponementRate)
	}
}

func TestAggregateRateChange(t *testing.T) {
	tasks := []*model.Task{
		done(at(11, 9)),
		done(at(10, 9)),
		pending(at(10, 9)),
	}

	snap := Aggregate(tasks, model.PeriodToday, testNow)
	if snap.CompletionRate != 100 {
		t.Errorf("completion rate = %d", snap.CompletionRate)
	}
	if snap.PreviousCompletionRate != 50 {
		t.Errorf("previous rate = %d", snap.PreviousCompletionRate)
	}
	if snap.RateChange != 50 {
		t.Errorf("rate change = %d", snap.RateChange)
	}
}

func TestAggregateBreakdowns(t *testing.T) {
	meeting := done(at(11, 9))
	meeting.Priority = model.PriorityHigh
	meeting.Tags = []string{"업무"}
	meeting.DueDate = at(11, 14)

	workout := pending(at(11, 9))
	workout.Priority = model.PriorityLow
	workout.Tags = []string{"건강"}
	workout.DueDate = at(11, 18)

	chore := pending(at(11, 9)) // no due date, stays out of the hourly buckets

	snap := Aggregate([]*model.Task{meeting, workout, chore}, model.PeriodToday, testNow)

	if stat := snap.PriorityAnalysis["high"]; stat == nil || stat.Total != 1 || stat.Completed != 1 {
		t.Errorf("high = %+v", stat)
	}
	if stat := snap.PriorityAnalysis["low"]; stat == nil || stat.Total != 1 || stat.Completed != 0 {
		t.Errorf("low = %+v", stat)
	}
	if stat := snap.PriorityAnalysis["medium"]; stat == nil || stat.Total != 1 {
		t.Errorf("medium = %+v", stat)
	}

	if len(snap.HourlyProductivity) != 2 {
		t.Errorf("hourly buckets = %v", snap.HourlyProductivity)
	}
	if stat := snap.HourlyProductivity[14]; stat == nil || stat.Completed != 1 {
		t.Errorf("14h = %+v", stat)
	}

	if stat := snap.TagAnalysis["업무"]; stat == nil || stat.Completed != 1 {
		t.Errorf("업무 = %+v", stat)
	}
}

func TestAggregateWeekDailyBreakdown(t *testing.T) {
	monday := done(at(9, 9))
	monday.DueDate = at(9, 18)

	wednesday := pending(at(11, 9)) // no due date, keyed by creation day

	snap := Aggregate([]*model.Task{monday, wednesday}, model.PeriodWeek, testNow)

	if stat := snap.DailyProductivity["월요일"]; stat == nil || stat.Total != 1 || stat.Completed != 1 {
		t.Errorf("monday = %+v", stat)
	}
	if stat := snap.DailyProductivity["수요일"]; stat == nil || stat.Total != 1 || stat.Completed != 0 {
		t.Errorf("wednesday = %+v", stat)
	}
}

func TestAggregateWindowsRecords(t *testing.T) {
	inside := done(at(11, 9))
	lastWeek := done(at(3, 9))
	dueThisWeek := pending(at(3, 9))
	dueThisWeek.DueDate = at(13, 18)

	snap := Aggregate([]*model.Task{inside, lastWeek, dueThisWeek}, model.PeriodWeek, testNow)
	if snap.Total != 2 {
		t.Errorf("total = %d", snap.Total)
	}

	snap = Aggregate([]*model.Task{inside, lastWeek, dueThisWeek}, model.PeriodToday, testNow)
	if snap.Total != 1 {
		t.Errorf("today total = %d", snap.Total)
	}
}
