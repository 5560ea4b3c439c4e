package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/infrastructure/logger"
	"github.com/shiftdesk/core/internal/ports"
)

// TaskService orchestrates the task store, the occurrence filter, the
// completion ledger and the recurrence advancer. The acting staff member is
// passed explicitly on every mutating call.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// FetchByRole returns the tasks owned by userID for the given role. With a
// date it narrows to the occurrences due that day and projects each task's
// status for that day; without one it returns every definition for the
// management view. Results are ordered by start time.
func (s *TaskService) FetchByRole(ctx context.Context, role entities.StaffRole, userID uuid.UUID, date *time.Time) ([]*entities.Task, error) {
	if !role.IsValid() {
		return nil, entities.ErrInvalidRole
	}

	tasks, err := s.taskRepo.GetByRoleAndOwner(ctx, role, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	if date == nil {
		return tasks, nil
	}

	due := entities.FilterDue(tasks, role, *date)
	for _, t := range due {
		t.Status = t.ProjectStatus(*date)
	}
	entities.SortBySchedule(due)

	return due, nil
}

// GetTask retrieves a single task definition.
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// CreateTask creates a new task definition. For recurring definitions an
// existing template with the same title, role and owner makes the call a
// no-op: it returns (nil, nil) and the caller must not treat that as an
// error. Scheduling invariants are enforced here, not deferred to the store.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest, userID uuid.UUID) (*entities.Task, error) {
	task := &entities.Task{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Role:          req.Role,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Type:          req.Type,
		Priority:      req.Priority,
		Status:        entities.TaskStatusPending,
		TaskDate:      req.TaskDate,
		RecurringDays: req.RecurringDays,
		CreatedBy:     userID,
		Version:       1,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task definition: %w", err)
	}

	if task.IsRecurring() {
		existing, err := s.taskRepo.FindRecurringByTitle(ctx, task.Title, task.Role, userID)
		if err != nil && !errors.Is(err, entities.ErrTaskNotFound) {
			return nil, fmt.Errorf("duplicate check failed: %w", err)
		}
		if existing != nil {
			s.logger.Infow("Duplicate recurring task ignored",
				"title", task.Title, "role", task.Role, "existing_id", existing.ID)
			return nil, nil
		}
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "title", task.Title, "type", task.Type)

	return task, nil
}

// UpdateTask applies a partial update. A status change writes through the
// completion ledger for the target date before persisting: completed records
// a complete action, overdue records a not-done action with the reason, and
// pending clears that day's entries. The persist is a compare-and-swap on the
// version column.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest, actor ports.Actor) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Role != nil {
		task.Role = *req.Role
	}
	if req.StartTime != nil {
		task.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		task.EndTime = *req.EndTime
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.TaskDate != nil {
		task.TaskDate = req.TaskDate
	}
	if req.RecurringDays != nil {
		task.RecurringDays = req.RecurringDays
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}

		date, err := statusDate(req.Date)
		if err != nil {
			return nil, err
		}

		switch *req.Status {
		case entities.TaskStatusCompleted:
			task.Actions = entities.UpsertAction(task.Actions, entities.TaskAction{
				Action:      entities.ActionComplete,
				Day:         entities.WeekdayName(date),
				CompletedBy: actor.DisplayName,
				Timestamp:   occurrenceTime(date),
			})
			task.CompletedBy = actor.DisplayName
			task.Reason = ""
		case entities.TaskStatusOverdue:
			if req.Reason != nil {
				task.Reason = *req.Reason
			}
			task.Actions = entities.UpsertAction(task.Actions, entities.TaskAction{
				Action:      entities.ActionNotDone,
				Day:         entities.WeekdayName(date),
				CompletedBy: actor.DisplayName,
				Timestamp:   occurrenceTime(date),
			})
		case entities.TaskStatusPending:
			task.Actions = clearDay(task.Actions, date)
			task.CompletedBy = ""
			task.Reason = ""
		}
		task.Status = *req.Status
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task definition: %w", err)
	}

	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "status", task.Status, "actor", actor.ID)

	return task, nil
}

// DeleteTask removes a task definition permanently.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id)

	return nil
}

// ListTasks retrieves task definitions for the management view.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// MarkDone records a complete action for the occurrence on date and returns
// the advisory next due date for recurring tasks. The recurring template is
// not duplicated; it is re-selected by the occurrence filter on that date.
func (s *TaskService) MarkDone(ctx context.Context, id uuid.UUID, actor ports.Actor, date time.Time) (*ports.TaskCompletionResult, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Actions = entities.UpsertAction(task.Actions, entities.TaskAction{
		Action:      entities.ActionComplete,
		Day:         entities.WeekdayName(date),
		CompletedBy: actor.DisplayName,
		Timestamp:   occurrenceTime(date),
	})
	task.Status = entities.TaskStatusCompleted
	task.CompletedBy = actor.DisplayName
	task.Reason = ""
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	result := &ports.TaskCompletionResult{Task: task}
	if task.IsRecurring() {
		result.NextOccurrence = task.NextOccurrence(date)
		s.logger.Infow("Recurring task completed",
			"task_id", task.ID, "date", entities.ISODate(date), "next_occurrence", result.NextOccurrence)
	} else {
		s.logger.Infow("Task completed", "task_id", task.ID, "date", entities.ISODate(date))
	}

	return result, nil
}

// MarkNotDone records a not-done action with the given reason for the
// occurrence on date.
func (s *TaskService) MarkNotDone(ctx context.Context, id uuid.UUID, reason string, actor ports.Actor, date time.Time) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Actions = entities.UpsertAction(task.Actions, entities.TaskAction{
		Action:      entities.ActionNotDone,
		Day:         entities.WeekdayName(date),
		CompletedBy: actor.DisplayName,
		Timestamp:   occurrenceTime(date),
	})
	task.Status = entities.TaskStatusOverdue
	task.Reason = reason
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("Task marked not done",
		"task_id", task.ID, "date", entities.ISODate(date), "reason", reason)

	return task, nil
}

// occurrenceTime anchors a ledger timestamp to the occurrence's calendar
// date. Acting on today's occurrence stamps the current instant; acting on
// another day's occurrence stamps that day, so the status projector's
// exact-date match keeps working.
func occurrenceTime(date time.Time) time.Time {
	now := time.Now()
	if entities.ISODate(now) == entities.ISODate(date) {
		return now
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, date.Location())
}

// clearDay removes every ledger entry recorded on the given calendar date,
// reverting the occurrence to pending.
func clearDay(actions entities.TaskActions, date time.Time) entities.TaskActions {
	day := entities.ISODate(date)
	out := make(entities.TaskActions, 0, len(actions))
	for _, a := range actions {
		if entities.ISODate(a.Timestamp) == day {
			continue
		}
		out = append(out, a)
	}
	return out
}

func statusDate(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return time.Now(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", *raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", *raw, err)
	}
	return date, nil
}
