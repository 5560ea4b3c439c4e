package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shiftdesk/core/internal/application/services"
	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/infrastructure/logger"
	"github.com/shiftdesk/core/internal/ports"
)

// TaskHandler handles task requests for both the shift schedule view and the
// management view.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// MarkDoneRequest optionally targets a specific occurrence date.
type MarkDoneRequest struct {
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MarkNotDoneRequest records why an occurrence was skipped.
type MarkNotDoneRequest struct {
	Reason string  `json:"reason" validate:"required,max=500"`
	Date   *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// GetSchedule returns the occurrences due for a role on a given day, each with
// its status projected for that day. The date defaults to today.
func (h *TaskHandler) GetSchedule(c echo.Context) error {
	role := entities.StaffRole(c.QueryParam("role"))
	if !role.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or missing role parameter")
	}

	date := time.Now()
	if dateStr := c.QueryParam("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date parameter, expected YYYY-MM-DD")
		}
		date = parsed
	}

	actor := actorFromContext(c)

	tasks, err := h.taskService.FetchByRole(c.Request().Context(), role, actor.ID, &date)
	if err != nil {
		h.logger.Errorw("Get schedule failed", "error", err, "role", role)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// ListTasks returns task definitions for the management view, unfiltered by
// date.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := ports.TaskFilter{}

	if role := c.QueryParam("role"); role != "" {
		staffRole := entities.StaffRole(role)
		if !staffRole.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid role parameter")
		}
		filter.Role = &staffRole
	}
	if taskType := c.QueryParam("type"); taskType != "" {
		tt := entities.TaskType(taskType)
		if !tt.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid type parameter")
		}
		filter.Type = &tt
	}
	if priority := c.QueryParam("priority"); priority != "" {
		p := entities.Priority(priority)
		if !p.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid priority parameter")
		}
		filter.Priority = &p
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		filter.Limit = limit
	}

	actor := actorFromContext(c)
	filter.CreatedBy = &actor.ID

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task definition
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), taskID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// CreateTask creates a task definition. Creating a recurring task whose title
// already exists for the same role and owner is accepted but does nothing.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := actorFromContext(c)

	task, err := h.taskService.CreateTask(c.Request().Context(), req, actor.ID)
	if err != nil {
		h.logger.Errorw("Create task failed", "error", err, "title", req.Title)
		return mapDomainError(err)
	}

	if task == nil {
		return c.JSON(http.StatusOK, MessageResponse{Message: "Recurring task already exists"})
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task definition
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := actorFromContext(c)

	task, err := h.taskService.UpdateTask(c.Request().Context(), taskID, req, actor)
	if err != nil {
		h.logger.Errorw("Update task failed", "error", err, "task_id", taskID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task definition
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), taskID); err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "task_id", taskID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// MarkDone records a completion for the occurrence on the given date and, for
// recurring tasks, reports the next due date.
func (h *TaskHandler) MarkDone(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req MarkDoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := occurrenceDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := actorFromContext(c)

	result, err := h.taskService.MarkDone(c.Request().Context(), taskID, actor, date)
	if err != nil {
		h.logger.Errorw("Mark done failed", "error", err, "task_id", taskID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// MarkNotDone records a skipped occurrence with its reason
func (h *TaskHandler) MarkNotDone(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req MarkNotDoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := occurrenceDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := actorFromContext(c)

	task, err := h.taskService.MarkNotDone(c.Request().Context(), taskID, req.Reason, actor, date)
	if err != nil {
		h.logger.Errorw("Mark not done failed", "error", err, "task_id", taskID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func occurrenceDate(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", *raw, time.Local)
}
