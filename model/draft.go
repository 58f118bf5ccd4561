package model

// TaskDraft is the structured result of parsing free-form text into a task.
// DueDate is always a YYYY-MM-DD string no earlier than today; DueTime, when
// present, is a 24-hour HH:MM string. Status is always pending.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date"`
	DueTime     string   `json:"due_time,omitempty"`
	Priority    int      `json:"priority"`
	Tags        []string `json:"tags"`
	Status      Status   `json:"status"`
}
