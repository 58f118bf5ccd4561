package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"main/model"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

// Tuesday afternoon; "tomorrow" is 2026-03-11.
var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestParser(client CompletionClient) *Parser {
	p := NewParser(client)
	p.now = func() time.Time { return testNow }
	return p
}

func TestValidate(t *testing.T) {
	p := newTestParser(&fakeClient{})

	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{name: "empty string", input: "", wantCode: CodeEmptyInput},
		{name: "whitespace only", input: "   \t\n  ", wantCode: CodeInvalidContent},
		{name: "over 500 runes", input: strings.Repeat("가", 501), wantCode: CodeTooLong},
		{name: "only disallowed characters", input: "@#$ @#$", wantCode: CodeInvalidContent},
		{name: "single rune after cleanup", input: "a", wantCode: CodeTooShort},
		{name: "valid input", input: "내일 오후 3시 팀 미팅"},
		{name: "exactly 500 runes", input: strings.Repeat("가", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, inputErr := p.Validate(tt.input)
			if tt.wantCode == "" {
				if inputErr != nil {
					t.Fatalf("unexpected error: %v", inputErr)
				}
				return
			}
			if inputErr == nil {
				t.Fatalf("expected code %s, got nil", tt.wantCode)
			}
			if inputErr.Code != tt.wantCode {
				t.Errorf("got code %s, want %s", inputErr.Code, tt.wantCode)
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "  buy   milk  ", want: "Buy Milk"},
		{name: "korean untouched by casing", input: "내일 회의 준비", want: "내일 회의 준비"},
		{name: "strips emoji", input: "회의 📅 준비", want: "회의 준비"},
		{name: "keeps common punctuation", input: "3시, 회의!", want: "3시, 회의!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKoreanScenario(t *testing.T) {
	client := &fakeClient{
		response: "```json\n" +
			`{"title": "팀 미팅", "description": "", "due_date": "2026-03-11", "due_time": "15:00", "priority": 2, "tags": ["업무"]}` +
			"\n```",
	}
	p := newTestParser(client)

	draft, err := p.Parse(context.Background(), "내일 오후 3시 팀 미팅")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Title != "팀 미팅" {
		t.Errorf("title = %q", draft.Title)
	}
	if draft.DueDate != "2026-03-11" {
		t.Errorf("due_date = %q", draft.DueDate)
	}
	if draft.DueTime != "15:00" {
		t.Errorf("due_time = %q", draft.DueTime)
	}
	if draft.Priority != model.PriorityMedium {
		t.Errorf("priority = %d", draft.Priority)
	}
	if len(draft.Tags) != 1 || draft.Tags[0] != "업무" {
		t.Errorf("tags = %v", draft.Tags)
	}
	if draft.Status != model.StatusPending {
		t.Errorf("status = %q", draft.Status)
	}

	if !strings.Contains(client.prompt, "2026-03-11") {
		t.Error("prompt is missing tomorrow's date")
	}
	if !strings.Contains(client.prompt, "화요일") {
		t.Error("prompt is missing today's day name")
	}
}

func TestParseRepair(t *testing.T) {
	longTitle := strings.Repeat("가", 250)

	tests := []struct {
		name     string
		response string
		check    func(t *testing.T, draft *model.TaskDraft)
	}{
		{
			name:     "title truncated with ellipsis",
			response: `{"title": "` + longTitle + `"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if n := utf8.RuneCountInString(draft.Title); n != model.MaxTitleLength {
					t.Errorf("title length = %d runes", n)
				}
				if !strings.HasSuffix(draft.Title, "…") {
					t.Error("truncated title should end with ellipsis")
				}
			},
		},
		{
			name:     "one-rune title falls back to default",
			response: `{"title": "a"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.Title != "새 할 일" {
					t.Errorf("title = %q", draft.Title)
				}
			},
		},
		{
			name:     "missing title falls back to default",
			response: `{"priority": 1}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.Title != "새 할 일" {
					t.Errorf("title = %q", draft.Title)
				}
			},
		},
		{
			name:     "past due date clamped to today",
			response: `{"title": "세금 신고", "due_date": "2020-01-01"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.DueDate != "2026-03-10" {
					t.Errorf("due_date = %q", draft.DueDate)
				}
			},
		},
		{
			name:     "malformed due date clamped to today",
			response: `{"title": "세금 신고", "due_date": "next friday"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.DueDate != "2026-03-10" {
					t.Errorf("due_date = %q", draft.DueDate)
				}
			},
		},
		{
			name:     "future due date kept",
			response: `{"title": "세금 신고", "due_date": "2026-04-01"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.DueDate != "2026-04-01" {
					t.Errorf("due_date = %q", draft.DueDate)
				}
			},
		},
		{
			name:     "invalid due time dropped",
			response: `{"title": "운동 가기", "due_time": "25:99"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.DueTime != "" {
					t.Errorf("due_time = %q", draft.DueTime)
				}
			},
		},
		{
			name:     "out-of-range priority coerced to medium",
			response: `{"title": "운동 가기", "priority": 7}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.Priority != model.PriorityMedium {
					t.Errorf("priority = %d", draft.Priority)
				}
			},
		},
		{
			name:     "string priority coerced to medium",
			response: `{"title": "운동 가기", "priority": "high"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.Priority != model.PriorityMedium {
					t.Errorf("priority = %d", draft.Priority)
				}
			},
		},
		{
			name:     "tags capped at three",
			response: `{"title": "운동 가기", "tags": ["건강", "개인", "업무", "공부", "운동"]}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if len(draft.Tags) != model.MaxTags {
					t.Errorf("tags = %v", draft.Tags)
				}
			},
		},
		{
			name:     "missing tags yield empty slice",
			response: `{"title": "운동 가기"}`,
			check: func(t *testing.T, draft *model.TaskDraft) {
				if draft.Tags == nil || len(draft.Tags) != 0 {
					t.Errorf("tags = %#v", draft.Tags)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(&fakeClient{response: tt.response})
			draft, err := p.Parse(context.Background(), "내일 할 일")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, draft)
		})
	}
}

func TestParseUpstreamFailures(t *testing.T) {
	t.Run("client error passes through", func(t *testing.T) {
		upstream := &UpstreamError{Category: CategoryRateLimited, Message: "rate limited"}
		p := newTestParser(&fakeClient{err: upstream})

		_, err := p.Parse(context.Background(), "내일 할 일")
		if CategoryOf(err) != CategoryRateLimited {
			t.Errorf("category = %s", CategoryOf(err))
		}
	})

	t.Run("no JSON in response", func(t *testing.T) {
		p := newTestParser(&fakeClient{response: "죄송합니다, 할 일을 만들 수 없습니다."})

		_, err := p.Parse(context.Background(), "내일 할 일")
		if CategoryOf(err) != CategoryParseFailed {
			t.Errorf("category = %s", CategoryOf(err))
		}
		if !errors.Is(err, ErrNoJSONObject) {
			t.Error("expected ErrNoJSONObject in chain")
		}
	})

	t.Run("invalid JSON in response", func(t *testing.T) {
		p := newTestParser(&fakeClient{response: `{title: 미팅}`})

		_, err := p.Parse(context.Background(), "내일 할 일")
		if CategoryOf(err) != CategoryParseFailed {
			t.Errorf("category = %s", CategoryOf(err))
		}
	})

	t.Run("input error before any call", func(t *testing.T) {
		client := &fakeClient{response: `{"title": "unused"}`}
		p := newTestParser(client)

		_, err := p.Parse(context.Background(), "")
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Fatalf("expected InputError, got %v", err)
		}
		if client.prompt != "" {
			t.Error("client was called despite invalid input")
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "429 status", err: errors.New("unexpected status 429"), want: CategoryRateLimited},
		{name: "quota text", err: errors.New("you exceeded your current quota"), want: CategoryRateLimited},
		{name: "401 status", err: errors.New("unexpected status 401"), want: CategoryAuthFailed},
		{name: "bad api key", err: errors.New("incorrect API key provided"), want: CategoryAuthFailed},
		{name: "timeout", err: errors.New("context deadline exceeded"), want: CategoryNetwork},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: CategoryNetwork},
		{name: "anything else", err: errors.New("boom"), want: CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err).Category; got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
