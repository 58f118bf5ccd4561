package model

// Period selects the analytics window: today (compared against yesterday) or
// week (compared against the prior week).
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
)

func (p Period) Valid() bool {
	return p == PeriodToday || p == PeriodWeek
}

// BucketStat is a total/completed pair for one breakdown bucket.
type BucketStat struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// AnalyticsSnapshot is the numeric aggregate computed from a record set for
// one window. It is derived on every request and never persisted.
type AnalyticsSnapshot struct {
	Period Period `json:"period"`

	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Urgent    int `json:"urgent"`
	Overdue   int `json:"overdue"`

	CompletionRate         int `json:"completion_rate"`
	PreviousCompletionRate int `json:"previous_completion_rate"`
	RateChange             int `json:"rate_change"`
	DeadlineComplianceRate int `json:"deadline_compliance_rate"`
	PostponementRate       int `json:"postponement_rate"`

	PriorityAnalysis   map[string]*BucketStat `json:"priority_analysis"`
	HourlyProductivity map[int]*BucketStat    `json:"hourly_productivity"`
	TagAnalysis        map[string]*BucketStat `json:"tag_analysis"`
	// DailyProductivity is keyed by Korean day-of-week name; week period only.
	DailyProductivity map[string]*BucketStat `json:"daily_productivity,omitempty"`

	// Tasks holds the records that fell inside the window, for prompt building
	// and derived list construction.
	Tasks []*Task `json:"-"`
}
