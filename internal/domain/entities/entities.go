package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNoteNotFound      = errors.New("handover note not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrVersionConflict   = errors.New("task was modified by another writer")
	ErrInvalidRecurrence = errors.New("recurring task has no weekday selected")
	ErrAmbiguousSchedule = errors.New("task has both a task date and recurring days")
	ErrMissingTaskDate   = errors.New("one-time task requires a task date")
	ErrInvalidRole       = errors.New("invalid staff role")
	ErrInvalidStatus     = errors.New("invalid status")
)

// Enums and types
type StaffRole string

const (
	StaffRoleReceptionist StaffRole = "receptionist"
	StaffRoleHost         StaffRole = "host"
	StaffRoleNightshift   StaffRole = "nightshift"
)

type AccountRole string

const (
	AccountRoleAdmin   AccountRole = "admin"
	AccountRoleManager AccountRole = "manager"
	AccountRoleStaff   AccountRole = "staff"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

type TaskType string

const (
	TaskTypeOneTime   TaskType = "one-time"
	TaskTypeRecurring TaskType = "recurring"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ActionType string

const (
	ActionComplete ActionType = "complete"
	ActionNotDone  ActionType = "not-done"
)

// RecurringDays marks which weekdays a recurring task fires on.
type RecurringDays struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// On reports whether the given lowercase weekday name is selected.
func (rd RecurringDays) On(weekday string) bool {
	switch weekday {
	case "monday":
		return rd.Monday
	case "tuesday":
		return rd.Tuesday
	case "wednesday":
		return rd.Wednesday
	case "thursday":
		return rd.Thursday
	case "friday":
		return rd.Friday
	case "saturday":
		return rd.Saturday
	case "sunday":
		return rd.Sunday
	default:
		return false
	}
}

// Any reports whether at least one weekday is selected.
func (rd RecurringDays) Any() bool {
	return rd.Monday || rd.Tuesday || rd.Wednesday || rd.Thursday ||
		rd.Friday || rd.Saturday || rd.Sunday
}

// Value implements driver.Valuer so recurring days persist as JSONB.
func (rd RecurringDays) Value() (driver.Value, error) {
	return json.Marshal(rd)
}

// Scan implements sql.Scanner for the JSONB recurring_days column.
func (rd *RecurringDays) Scan(src interface{}) error {
	if src == nil {
		*rd = RecurringDays{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("recurring_days: unexpected type %T", src)
	}
	return json.Unmarshal(b, rd)
}

// TaskAction is one entry in a task's completion ledger. The ledger holds at
// most one entry per (Action, Day) pair; Timestamp carries the exact moment
// the action was taken, and with it the calendar date of the occurrence.
type TaskAction struct {
	Action      ActionType `json:"action"`
	Day         string     `json:"day"`
	CompletedBy string     `json:"completed_by"`
	Timestamp   time.Time  `json:"timestamp"`
}

// TaskActions is the completion ledger as persisted in the recursive_actions
// JSONB column.
type TaskActions []TaskAction

// Value implements driver.Valuer.
func (a TaskActions) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(TaskActions{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *TaskActions) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("recursive_actions: unexpected type %T", src)
	}
	return json.Unmarshal(b, a)
}

// Task is a staff task template: a single record backing either one calendar
// occurrence (one-time) or every matching weekday occurrence (recurring).
// Occurrences are never materialized as rows of their own; per-day state is
// derived from the Actions ledger.
type Task struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Description   string         `json:"description" db:"description"`
	Role          StaffRole      `json:"role" db:"role"`
	StartTime     string         `json:"start_time" db:"start_time"`
	EndTime       string         `json:"end_time" db:"end_time"`
	Type          TaskType       `json:"type" db:"type"`
	Priority      Priority       `json:"priority" db:"priority"`
	Status        TaskStatus     `json:"status" db:"status"`
	Reason        string         `json:"reason" db:"reason"`
	TaskDate      *string        `json:"task_date" db:"task_date"`
	RecurringDays *RecurringDays `json:"recurring_days" db:"recurring_days"`
	CompletedBy   string         `json:"completed_by" db:"completed_by"`
	Actions       TaskActions    `json:"recursive_actions" db:"recursive_actions"`
	CreatedBy     uuid.UUID      `json:"created_by" db:"created_by"`
	Version       int            `json:"version" db:"version"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// IsRecurring reports whether the task is a recurring template.
func (t *Task) IsRecurring() bool {
	return t.Type == TaskTypeRecurring
}

// IsOneTime reports whether the task is bound to a single calendar date.
func (t *Task) IsOneTime() bool {
	return t.Type == TaskTypeOneTime
}

// Validate enforces the scheduling invariants: exactly one of TaskDate or
// RecurringDays is populated, and a recurring task selects at least one
// weekday.
func (t *Task) Validate() error {
	if !t.Role.IsValid() {
		return ErrInvalidRole
	}
	switch t.Type {
	case TaskTypeOneTime:
		if t.RecurringDays != nil {
			return ErrAmbiguousSchedule
		}
		if t.TaskDate == nil || *t.TaskDate == "" {
			return ErrMissingTaskDate
		}
	case TaskTypeRecurring:
		if t.TaskDate != nil {
			return ErrAmbiguousSchedule
		}
		if t.RecurringDays == nil || !t.RecurringDays.Any() {
			return ErrInvalidRecurrence
		}
	default:
		return fmt.Errorf("invalid task type %q", t.Type)
	}
	return nil
}

// HandoverNote is a shift handover message posted by a staff member.
type HandoverNote struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	AuthorID    uuid.UUID  `json:"author_id" db:"author_id"`
	Priority    Priority   `json:"priority" db:"priority"`
	Content     string     `json:"content" db:"content"`
	Date        string     `json:"date" db:"date"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	EditedAt    *time.Time `json:"edited_at" db:"edited_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// User represents a staff account in the system
type User struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password_hash"`
	DisplayName  string      `json:"display_name" db:"display_name"`
	Emoji        string      `json:"emoji" db:"emoji"`
	Role         AccountRole `json:"role" db:"role"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time  `json:"deleted_at" db:"deleted_at"`
}

// Utility methods
func (r StaffRole) IsValid() bool {
	switch r {
	case StaffRoleReceptionist, StaffRoleHost, StaffRoleNightshift:
		return true
	default:
		return false
	}
}

func (r AccountRole) IsValid() bool {
	switch r {
	case AccountRoleAdmin, AccountRoleManager, AccountRoleStaff:
		return true
	default:
		return false
	}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusOverdue:
		return true
	default:
		return false
	}
}

func (tt TaskType) IsValid() bool {
	switch tt {
	case TaskTypeOneTime, TaskTypeRecurring:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (at ActionType) IsValid() bool {
	switch at {
	case ActionComplete, ActionNotDone:
		return true
	default:
		return false
	}
}
