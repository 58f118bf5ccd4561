package model

// SummaryReport is the narrative report returned to the user after the model
// output has been reconciled against the snapshot. Every field is always
// populated; malformed model output degrades to deterministic defaults.
type SummaryReport struct {
	Period  Period `json:"period"`
	Summary string `json:"summary"`

	UrgentTasks    []string              `json:"urgent_tasks"`
	RemainingTodos []TaskBrief           `json:"remaining_todos"`
	FocusTasks     []TaskBrief           `json:"focus_tasks"`
	Stats          *SummaryStats         `json:"stats"`
	Completion     *CompletionAnalysis   `json:"completion_analysis"`
	TimeManagement *TimeManagement       `json:"time_management"`
	Patterns       *ProductivityPatterns `json:"productivity_patterns"`

	Insights        []string    `json:"insights"`
	Recommendations []string    `json:"recommendations"`
	Motivation      *Motivation `json:"motivation"`

	// DailyBreakdown mirrors the snapshot's daily buckets; week period only.
	DailyBreakdown map[string]*BucketStat `json:"daily_breakdown,omitempty"`
}

// TaskBrief is the compact task shape embedded in summary lists.
type TaskBrief struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	DueDate  string `json:"due_date,omitempty"`
	DueToday bool   `json:"due_today"`
}

// SummaryStats echoes the headline numbers so the report is self-contained.
type SummaryStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
	RateChange     int `json:"rate_change"`
}

type CompletionAnalysis struct {
	Rate      string   `json:"rate"`
	Trend     string   `json:"trend"`
	Strengths []string `json:"strengths"`
}

type TimeManagement struct {
	DeadlineCompliance  string `json:"deadline_compliance"`
	PostponementPattern string `json:"postponement_pattern"`
	ProductiveHours     string `json:"productive_hours"`
}

type ProductivityPatterns struct {
	BestPerformingAreas   []string `json:"best_performing_areas"`
	StrugglingAreas       []string `json:"struggling_areas"`
	PriorityEffectiveness string   `json:"priority_effectiveness"`
}

type Motivation struct {
	Achievements  string `json:"achievements"`
	Encouragement string `json:"encouragement"`
	NextSteps     string `json:"next_steps"`
}
