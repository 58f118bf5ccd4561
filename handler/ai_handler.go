package handler

import (
	"errors"
	"net/http"
	"time"

	"main/ai"
	"main/analytics"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	tasks      *usecase.TaskService
	parser     *ai.Parser
	summarizer *ai.Summarizer
	limiter    *services.RateLimiter
}

func NewAIHandler(tasks *usecase.TaskService, parser *ai.Parser, summarizer *ai.Summarizer, limiter *services.RateLimiter) *AIHandler {
	return &AIHandler{tasks: tasks, parser: parser, summarizer: summarizer, limiter: limiter}
}

// ParseTodo converts free-form text into a task draft. Input validation runs
// before the rate limiter and the completion call.
func (h *AIHandler) ParseTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Input *string `json:"input"`
		Save  bool    `json:"save"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == nil {
		utils.ErrorWithCode(c, http.StatusBadRequest, ai.CodeMissingInput, "입력이 필요합니다")
		return
	}

	if _, inputErr := h.parser.Validate(*req.Input); inputErr != nil {
		utils.ErrorWithCode(c, http.StatusBadRequest, inputErr.Code, inputErr.Message)
		return
	}

	if !h.limiter.Allow(c.Request.Context(), userID.(string), "parse") {
		utils.ErrorWithCode(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "요청이 너무 잦습니다. 잠시 후 다시 시도해 주세요")
		return
	}

	timer := utils.TrackAIDuration("parse")
	draft, err := h.parser.Parse(c.Request.Context(), *req.Input)
	timer.ObserveDuration()

	if err != nil {
		h.writeAIError(c, "parse", err)
		return
	}
	utils.TrackAICall("parse", "ok")

	if req.Save {
		task, err := h.tasks.TaskFromDraft(c.Request.Context(), userID.(string), draft)
		if err != nil {
			utils.InternalError(c, "Failed to save task")
			return
		}
		utils.Created(c, gin.H{"draft": draft, "task_id": task.TaskID})
		return
	}

	utils.Success(c, draft)
}

// Summary aggregates the user's records for the requested period and asks
// the model for a narrative report.
func (h *AIHandler) Summary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Period string `json:"period"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !model.Period(req.Period).Valid() {
		utils.ErrorWithCode(c, http.StatusBadRequest, "INVALID_PERIOD", "period는 today 또는 week여야 합니다")
		return
	}

	if !h.limiter.Allow(c.Request.Context(), userID.(string), "summary") {
		utils.ErrorWithCode(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "요청이 너무 잦습니다. 잠시 후 다시 시도해 주세요")
		return
	}

	tasks, err := h.tasks.AllUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	snapshot := analytics.Aggregate(tasks, model.Period(req.Period), time.Now())

	timer := utils.TrackAIDuration("summary")
	report, err := h.summarizer.Summarize(c.Request.Context(), snapshot)
	timer.ObserveDuration()

	if err != nil {
		h.writeAIError(c, "summary", err)
		return
	}

	utils.TrackAICall("summary", "ok")
	utils.Success(c, report)
}

// writeAIError maps each provider failure category onto its status code and
// retry guidance. No server-side retries; the UI offers a manual retry.
func (h *AIHandler) writeAIError(c *gin.Context, operation string, err error) {
	var inputErr *ai.InputError
	if errors.As(err, &inputErr) {
		utils.ErrorWithCode(c, http.StatusBadRequest, inputErr.Code, inputErr.Message)
		return
	}

	category := ai.CategoryOf(err)
	utils.TrackAICall(operation, string(category))

	switch category {
	case ai.CategoryRateLimited:
		utils.ErrorWithCode(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
			"AI 사용량이 일시적으로 초과되었습니다. 잠시 후 다시 시도해 주세요")
	case ai.CategoryAuthFailed:
		utils.ErrorWithCode(c, http.StatusUnauthorized, "AUTHENTICATION_FAILED",
			"AI 서비스 인증에 실패했습니다. 관리자에게 문의해 주세요")
	case ai.CategoryParseFailed:
		utils.ErrorWithCode(c, http.StatusInternalServerError, "PARSE_ERROR",
			"AI 응답을 해석하지 못했습니다. 다시 시도해 주세요")
	default:
		utils.ErrorWithCode(c, http.StatusInternalServerError, "INTERNAL_ERROR",
			"요청을 처리하지 못했습니다. 다시 시도해 주세요")
	}
}
