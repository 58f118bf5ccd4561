package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"main/analytics"
	"main/model"
)

const (
	maxInputRunes = 500
	defaultTitle  = "새 할 일"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Word characters, whitespace, Hangul syllables and jamo, common punctuation.
	disallowedChars = regexp.MustCompile(`[^\w\s가-힣ㄱ-ㅎㅏ-ㅣᄀ-ᇿ.,!?:;()'"~%&+/\-]`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern     = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Parser turns free-form text into a task draft via the completion
// collaborator, then validates and repairs whatever comes back.
type Parser struct {
	client CompletionClient
	now    func() time.Time
}

func NewParser(client CompletionClient) *Parser {
	return &Parser{client: client, now: time.Now}
}

// Validate checks the raw input before any network call and returns the
// preprocessed text on success.
func (p *Parser) Validate(input string) (string, *InputError) {
	if input == "" {
		return "", &InputError{Code: CodeEmptyInput, Message: "입력이 비어 있습니다"}
	}
	if strings.TrimSpace(input) == "" {
		return "", &InputError{Code: CodeInvalidContent, Message: "의미 있는 내용이 없습니다"}
	}
	if utf8.RuneCountInString(input) > maxInputRunes {
		return "", &InputError{Code: CodeTooLong, Message: "입력은 500자를 넘을 수 없습니다"}
	}

	cleaned := Preprocess(input)
	switch utf8.RuneCountInString(cleaned) {
	case 0:
		return "", &InputError{Code: CodeInvalidContent, Message: "의미 있는 내용이 없습니다"}
	case 1:
		return "", &InputError{Code: CodeTooShort, Message: "입력이 너무 짧습니다"}
	}
	return cleaned, nil
}

// Preprocess trims, collapses whitespace runs, strips characters outside the
// allow-list and capitalizes word-leading letters.
func Preprocess(input string) string {
	s := strings.TrimSpace(input)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = disallowedChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))

	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Parse converts input into a task draft. Input validation failures return an
// *InputError; provider failures return an *UpstreamError.
func (p *Parser) Parse(ctx context.Context, input string) (*model.TaskDraft, error) {
	cleaned, inputErr := p.Validate(input)
	if inputErr != nil {
		return nil, inputErr
	}

	raw, err := p.client.Complete(ctx, p.buildPrompt(cleaned))
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, &UpstreamError{Category: CategoryParseFailed, Message: "model returned no parsable task", Err: err}
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return nil, &UpstreamError{Category: CategoryParseFailed, Message: "model returned invalid JSON", Err: err}
	}

	return p.repair(fields), nil
}

func (p *Parser) buildPrompt(input string) string {
	now := p.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	date := func(t time.Time) string { return t.Format("2006-01-02") }
	daysUntil := func(w time.Weekday) int { return (int(w) - int(now.Weekday()) + 7) % 7 }
	weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))

	var b strings.Builder
	fmt.Fprintf(&b, "오늘은 %s(%s)이다.\n", date(midnight), analytics.DayName(now))
	b.WriteString("아래 자연어 입력을 할 일 하나로 변환하라.\n\n")
	fmt.Fprintf(&b, "입력: %q\n\n", input)

	b.WriteString("날짜 참조표:\n")
	fmt.Fprintf(&b, "- 오늘: %s\n", date(midnight))
	fmt.Fprintf(&b, "- 내일: %s\n", date(midnight.AddDate(0, 0, 1)))
	fmt.Fprintf(&b, "- 모레: %s\n", date(midnight.AddDate(0, 0, 2)))
	fmt.Fprintf(&b, "- 이번 주 금요일: %s\n", date(midnight.AddDate(0, 0, daysUntil(time.Friday))))
	fmt.Fprintf(&b, "- 다음 주 월요일: %s\n", date(weekStart.AddDate(0, 0, 8)))
	fmt.Fprintf(&b, "- 주말: %s\n", date(midnight.AddDate(0, 0, daysUntil(time.Saturday))))
	fmt.Fprintf(&b, "- 다음 주: %s\n\n", date(weekStart.AddDate(0, 0, 7)))

	b.WriteString("시간 참조표 (24시간제):\n")
	b.WriteString("- 아침 08:00, 점심 12:00, 오후 15:00, 저녁 19:00, 밤 21:00, 새벽 06:00, 정오 12:00, 자정 00:00\n")
	b.WriteString("- \"N시\" 같은 명시적 시각은 24시간제 HH:MM으로 변환\n\n")

	b.WriteString("우선순위 (1=높음, 2=보통, 3=낮음, 기본 2):\n")
	b.WriteString("- 중요/긴급/급함/꼭/반드시/당장 → 1\n")
	b.WriteString("- 나중에/여유/천천히/언젠가 → 3\n\n")

	b.WriteString("태그 어휘 (최대 3개, 이 네 가지만 사용):\n")
	b.WriteString("- 업무: 회의, 보고서, 프로젝트, 팀, 발표, 미팅\n")
	b.WriteString("- 개인: 쇼핑, 약속, 집안일, 여행\n")
	b.WriteString("- 건강: 운동, 병원, 요가, 러닝, 약\n")
	b.WriteString("- 공부: 공부, 강의, 시험, 책, 과제\n\n")

	b.WriteString("다음 필드를 가진 JSON 객체 하나만 출력하라. 다른 텍스트는 금지.\n")
	b.WriteString(`{"title": "...", "description": "...", "due_date": "YYYY-MM-DD", "due_time": "HH:MM", "priority": 2, "tags": []}`)
	return b.String()
}

// repair clamps every model-supplied field into the task invariants. The
// draft that leaves here is always insertable.
func (p *Parser) repair(fields map[string]any) *model.TaskDraft {
	now := p.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := midnight.Format("2006-01-02")

	draft := &model.TaskDraft{Status: model.StatusPending, Tags: []string{}}

	title, _ := asString(fields, "title")
	title = truncateTitle(title, model.MaxTitleLength)
	if utf8.RuneCountInString(title) < 2 {
		title = defaultTitle
	}
	draft.Title = title

	if desc, ok := asString(fields, "description"); ok {
		runes := []rune(desc)
		if len(runes) > model.MaxDescriptionLength {
			desc = string(runes[:model.MaxDescriptionLength])
		}
		draft.Description = desc
	}

	due := today
	if s, ok := asString(fields, "due_date"); ok && datePattern.MatchString(s) {
		parsed, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err == nil && !parsed.Before(midnight) {
			due = s
		}
	}
	draft.DueDate = due

	if s, ok := asString(fields, "due_time"); ok && timePattern.MatchString(s) {
		draft.DueTime = s
	}

	prio, ok := asInt(fields, "priority")
	if !ok {
		prio = model.PriorityMedium
	}
	prio = model.NormalizePriority(prio)
	if prio < model.PriorityHigh {
		prio = model.PriorityHigh
	}
	if prio > model.PriorityLow {
		prio = model.PriorityLow
	}
	draft.Priority = prio

	if tags := model.CleanTags(asStringSlice(fields, "tags")); len(tags) > 0 {
		draft.Tags = tags
	}

	return draft
}

func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
