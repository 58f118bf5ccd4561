package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"main/analytics"
	"main/model"
)

// Summarizer produces the narrative productivity report. The model only ever
// sees the prompt built here; derived lists and every default come straight
// from the snapshot, so a malformed model response degrades to a fully
// populated deterministic report instead of an error.
type Summarizer struct {
	client CompletionClient
	now    func() time.Time
}

func NewSummarizer(client CompletionClient) *Summarizer {
	return &Summarizer{client: client, now: time.Now}
}

func (s *Summarizer) Summarize(ctx context.Context, snap *model.AnalyticsSnapshot) (*model.SummaryReport, error) {
	now := s.now()
	report := s.defaultReport(snap, now)

	raw, err := s.client.Complete(ctx, buildSummaryPrompt(snap, now))
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		log.Printf("summary: model output had no JSON object, using defaults")
		return report, nil
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		log.Printf("summary: model output was not valid JSON, using defaults: %v", err)
		return report, nil
	}

	mergeReport(report, fields)
	return report, nil
}

func periodLabel(p model.Period) string {
	if p == model.PeriodWeek {
		return "이번 주"
	}
	return "오늘"
}

// defaultReport builds the report every field of which is already valid; the
// model response can only ever overwrite, never hollow out.
func (s *Summarizer) defaultReport(snap *model.AnalyticsSnapshot, now time.Time) *model.SummaryReport {
	label := periodLabel(snap.Period)

	urgent := []string{}
	for _, t := range snap.Tasks {
		if !t.Completed() && t.Priority == model.PriorityHigh {
			urgent = append(urgent, t.Title)
		}
	}

	report := &model.SummaryReport{
		Period:         snap.Period,
		Summary:        fmt.Sprintf("%s %d개의 할 일 중 %d개를 완료했습니다.", label, snap.Total, snap.Completed),
		UrgentTasks:    urgent,
		RemainingTodos: analytics.RemainingTodos(snap.Tasks),
		FocusTasks:     analytics.FocusTasks(snap.Tasks, now),
		Stats: &model.SummaryStats{
			Total:          snap.Total,
			Completed:      snap.Completed,
			Pending:        snap.Pending,
			CompletionRate: snap.CompletionRate,
			RateChange:     snap.RateChange,
		},
		Completion: &model.CompletionAnalysis{
			Rate:      fmt.Sprintf("완료율 %d%%", snap.CompletionRate),
			Trend:     defaultTrend(snap.RateChange),
			Strengths: []string{"꾸준히 할 일을 기록하고 있습니다"},
		},
		TimeManagement: &model.TimeManagement{
			DeadlineCompliance:  fmt.Sprintf("마감 준수율 %d%%", snap.DeadlineComplianceRate),
			PostponementPattern: fmt.Sprintf("미루기 비율 %d%%", snap.PostponementRate),
			ProductiveHours:     defaultProductiveHours(snap),
		},
		Patterns: &model.ProductivityPatterns{
			BestPerformingAreas:   defaultBestAreas(snap),
			StrugglingAreas:       defaultStrugglingAreas(snap),
			PriorityEffectiveness: defaultPriorityEffectiveness(snap),
		},
		Insights:        []string{fmt.Sprintf("%s 전체 완료율은 %d%%입니다.", label, snap.CompletionRate)},
		Recommendations: []string{"가장 급한 할 일 하나부터 끝내 보세요"},
		Motivation: &model.Motivation{
			Achievements:  fmt.Sprintf("%s %d개의 할 일을 완료했습니다", label, snap.Completed),
			Encouragement: "작은 완료가 쌓여 큰 변화가 됩니다",
			NextSteps:     defaultNextSteps(snap),
		},
		DailyBreakdown: snap.DailyProductivity,
	}
	return report
}

func defaultTrend(change int) string {
	switch {
	case change > 0:
		return fmt.Sprintf("지난 기간보다 완료율이 %d%%p 올랐습니다", change)
	case change < 0:
		return fmt.Sprintf("지난 기간보다 완료율이 %d%%p 내렸습니다", -change)
	default:
		return "지난 기간과 비슷한 수준입니다"
	}
}

func defaultProductiveHours(snap *model.AnalyticsSnapshot) string {
	bestHour, bestDone := -1, 0
	for hour, stat := range snap.HourlyProductivity {
		if stat.Completed > bestDone || (stat.Completed == bestDone && bestHour >= 0 && hour < bestHour) {
			bestHour, bestDone = hour, stat.Completed
		}
	}
	if bestHour < 0 || bestDone == 0 {
		return "아직 시간대별 데이터가 충분하지 않습니다"
	}
	return fmt.Sprintf("%d시 무렵에 가장 많은 일을 끝냈습니다", bestHour)
}

func defaultBestAreas(snap *model.AnalyticsSnapshot) []string {
	type tagStat struct {
		tag  string
		done int
	}
	var stats []tagStat
	for tag, stat := range snap.TagAnalysis {
		if stat.Completed > 0 {
			stats = append(stats, tagStat{tag, stat.Completed})
		}
	}
	if len(stats) == 0 {
		return []string{"완료 데이터가 쌓이면 잘하는 영역을 알려드립니다"}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].done != stats[j].done {
			return stats[i].done > stats[j].done
		}
		return stats[i].tag < stats[j].tag
	})
	if len(stats) > 2 {
		stats = stats[:2]
	}
	areas := make([]string, 0, len(stats))
	for _, st := range stats {
		areas = append(areas, fmt.Sprintf("'%s' 영역에서 %d개를 완료했습니다", st.tag, st.done))
	}
	return areas
}

func defaultStrugglingAreas(snap *model.AnalyticsSnapshot) []string {
	var tags []string
	for tag, stat := range snap.TagAnalysis {
		if stat.Total > 0 && stat.Completed == 0 {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return []string{"특별히 막히는 영역은 보이지 않습니다"}
	}
	sort.Strings(tags)
	if len(tags) > 2 {
		tags = tags[:2]
	}
	areas := make([]string, 0, len(tags))
	for _, tag := range tags {
		areas = append(areas, fmt.Sprintf("'%s' 영역의 할 일이 아직 진행 중입니다", tag))
	}
	return areas
}

func defaultPriorityEffectiveness(snap *model.AnalyticsSnapshot) string {
	high, ok := snap.PriorityAnalysis["high"]
	if !ok || high.Total == 0 {
		return "높은 우선순위 할 일이 없었습니다"
	}
	return fmt.Sprintf("높은 우선순위 %d개 중 %d개를 완료했습니다", high.Total, high.Completed)
}

func defaultNextSteps(snap *model.AnalyticsSnapshot) string {
	for _, t := range snap.Tasks {
		if !t.Completed() && t.Priority == model.PriorityHigh {
			return fmt.Sprintf("'%s'부터 시작해 보세요", t.Title)
		}
	}
	if snap.Pending > 0 {
		return fmt.Sprintf("남은 %d개 중 하나를 골라 시작해 보세요", snap.Pending)
	}
	return "새로운 할 일을 계획해 보세요"
}

func buildSummaryPrompt(snap *model.AnalyticsSnapshot, now time.Time) string {
	label := periodLabel(snap.Period)

	var b strings.Builder
	fmt.Fprintf(&b, "기간: %s (기준 %s)\n", label, now.Format("2006-01-02"))
	fmt.Fprintf(&b, "전체 %d개, 완료 %d개, 대기 %d개, 긴급 %d개, 기한 초과 %d개\n",
		snap.Total, snap.Completed, snap.Pending, snap.Urgent, snap.Overdue)
	fmt.Fprintf(&b, "완료율 %d%% (지난 기간 %d%%, 변화 %+d%%p)\n",
		snap.CompletionRate, snap.PreviousCompletionRate, snap.RateChange)
	fmt.Fprintf(&b, "마감 준수율 %d%%, 미루기 비율 %d%%\n\n", snap.DeadlineComplianceRate, snap.PostponementRate)

	b.WriteString("우선순위별:\n")
	for _, name := range []string{"high", "medium", "low"} {
		if stat, ok := snap.PriorityAnalysis[name]; ok {
			fmt.Fprintf(&b, "- %s: %d/%d 완료\n", name, stat.Completed, stat.Total)
		}
	}

	if len(snap.HourlyProductivity) > 0 {
		b.WriteString("\n시간대별:\n")
		hours := make([]int, 0, len(snap.HourlyProductivity))
		for hour := range snap.HourlyProductivity {
			hours = append(hours, hour)
		}
		sort.Ints(hours)
		for _, hour := range hours {
			stat := snap.HourlyProductivity[hour]
			fmt.Fprintf(&b, "- %02d시: %d/%d 완료\n", hour, stat.Completed, stat.Total)
		}
	}

	if len(snap.TagAnalysis) > 0 {
		b.WriteString("\n태그별:\n")
		tags := make([]string, 0, len(snap.TagAnalysis))
		for tag := range snap.TagAnalysis {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			stat := snap.TagAnalysis[tag]
			fmt.Fprintf(&b, "- %s: %d/%d 완료\n", tag, stat.Completed, stat.Total)
		}
	}

	b.WriteString("\n할 일 목록:\n")
	for _, t := range snap.Tasks {
		b.WriteString(taskLine(t))
	}

	b.WriteString("\n위 데이터만 근거로 삼아 한국어로 생산성을 분석하라. ")
	b.WriteString("다음 필드를 가진 JSON 객체 하나만 출력하라. 다른 텍스트는 금지.\n")
	b.WriteString(`{"summary": "...", "urgentTasks": [], ` +
		`"completionAnalysis": {"rate": "...", "trend": "...", "strengths": []}, ` +
		`"timeManagement": {"deadlineCompliance": "...", "postponementPattern": "...", "productiveHours": "..."}, ` +
		`"productivityPatterns": {"bestPerformingAreas": [], "strugglingAreas": [], "priorityEffectiveness": "..."}, ` +
		`"insights": [], "recommendations": [], ` +
		`"motivation": {"achievements": "...", "encouragement": "...", "nextSteps": "..."}}`)
	return b.String()
}

func taskLine(t *model.Task) string {
	glyph := "[ ]"
	if t.Completed() {
		glyph = "[x]"
	}
	bangs := strings.Repeat("!", 4-model.NormalizePriority(t.Priority))

	line := fmt.Sprintf("- %s %s %s", glyph, bangs, t.Title)
	if !t.DueDate.IsZero() {
		line += " (마감 " + t.DueDate.Format("2006-01-02 15:04") + ")"
	}
	for _, tag := range t.Tags {
		line += " #" + tag
	}
	return line + "\n"
}

// mergeReport overwrites defaults with whatever the model supplied, field by
// field. Absent or wrong-typed values leave the default in place.
func mergeReport(report *model.SummaryReport, fields map[string]any) {
	if v, ok := asString(fields, "summary"); ok {
		report.Summary = v
	}
	if v := asStringSlice(fields, "urgentTasks"); len(v) > 0 {
		report.UrgentTasks = v
	}
	if sub := asMap(fields, "completionAnalysis"); sub != nil {
		if v, ok := asString(sub, "rate"); ok {
			report.Completion.Rate = v
		}
		if v, ok := asString(sub, "trend"); ok {
			report.Completion.Trend = v
		}
		if v := asStringSlice(sub, "strengths"); len(v) > 0 {
			report.Completion.Strengths = v
		}
	}
	if sub := asMap(fields, "timeManagement"); sub != nil {
		if v, ok := asString(sub, "deadlineCompliance"); ok {
			report.TimeManagement.DeadlineCompliance = v
		}
		if v, ok := asString(sub, "postponementPattern"); ok {
			report.TimeManagement.PostponementPattern = v
		}
		if v, ok := asString(sub, "productiveHours"); ok {
			report.TimeManagement.ProductiveHours = v
		}
	}
	if sub := asMap(fields, "productivityPatterns"); sub != nil {
		if v := asStringSlice(sub, "bestPerformingAreas"); len(v) > 0 {
			report.Patterns.BestPerformingAreas = v
		}
		if v := asStringSlice(sub, "strugglingAreas"); len(v) > 0 {
			report.Patterns.StrugglingAreas = v
		}
		if v, ok := asString(sub, "priorityEffectiveness"); ok {
			report.Patterns.PriorityEffectiveness = v
		}
	}
	if v := asStringSlice(fields, "insights"); len(v) > 0 {
		report.Insights = v
	}
	if v := asStringSlice(fields, "recommendations"); len(v) > 0 {
		report.Recommendations = v
	}
	if sub := asMap(fields, "motivation"); sub != nil {
		if v, ok := asString(sub, "achievements"); ok {
			report.Motivation.Achievements = v
		}
		if v, ok := asString(sub, "encouragement"); ok {
			report.Motivation.Encouragement = v
		}
		if v, ok := asString(sub, "nextSteps"); ok {
			report.Motivation.NextSteps = v
		}
	}
}
