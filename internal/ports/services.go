package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftdesk/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for staff account management
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*entities.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, filter UserFilter) ([]*entities.User, int, error)
}

// TaskService is the task facade consumed by the scheduling and management
// views. The acting staff member is always an explicit parameter; there is no
// ambient current-user state.
type TaskService interface {
	FetchByRole(ctx context.Context, role entities.StaffRole, userID uuid.UUID, date *time.Time) ([]*entities.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest, userID uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest, actor Actor) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	MarkDone(ctx context.Context, id uuid.UUID, actor Actor, date time.Time) (*TaskCompletionResult, error)
	MarkNotDone(ctx context.Context, id uuid.UUID, reason string, actor Actor, date time.Time) (*entities.Task, error)
}

// NoteService interface for handover note operations
type NoteService interface {
	CreateNote(ctx context.Context, req CreateNoteRequest, authorID uuid.UUID) (*entities.HandoverNote, error)
	GetNote(ctx context.Context, id uuid.UUID) (*entities.HandoverNote, error)
	UpdateNote(ctx context.Context, id uuid.UUID, req UpdateNoteRequest) (*entities.HandoverNote, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
	ListNotesByDate(ctx context.Context, date string) ([]*entities.HandoverNote, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*entities.HandoverNote, error)
}

// Actor identifies the staff member performing an operation, threaded through
// explicitly from the authenticated request.
type Actor struct {
	ID          uuid.UUID
	DisplayName string
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Email       string               `json:"email" validate:"required,email"`
	Username    string               `json:"username" validate:"required,min=3,max=50"`
	Password    string               `json:"password" validate:"required,min=8"`
	DisplayName string               `json:"display_name" validate:"required,max=100"`
	Emoji       string               `json:"emoji" validate:"omitempty,max=8"`
	Role        entities.AccountRole `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID      string               `json:"user_id"`
	Email       string               `json:"email"`
	DisplayName string               `json:"display_name"`
	Role        entities.AccountRole `json:"role"`
}

// User related types
type CreateUserRequest struct {
	Email       string               `json:"email" validate:"required,email"`
	Username    string               `json:"username" validate:"required,min=3,max=50"`
	Password    string               `json:"password" validate:"required,min=8"`
	DisplayName string               `json:"display_name" validate:"required,max=100"`
	Emoji       string               `json:"emoji" validate:"omitempty,max=8"`
	Role        entities.AccountRole `json:"role" validate:"required"`
	IsActive    bool                 `json:"is_active"`
}

type UpdateUserRequest struct {
	Email       *string               `json:"email" validate:"omitempty,email"`
	Username    *string               `json:"username" validate:"omitempty,min=3,max=50"`
	DisplayName *string               `json:"display_name" validate:"omitempty,max=100"`
	Emoji       *string               `json:"emoji" validate:"omitempty,max=8"`
	Role        *entities.AccountRole `json:"role" validate:"omitempty"`
	IsActive    *bool                 `json:"is_active"`
}

// Task related types
type CreateTaskRequest struct {
	Title         string                  `json:"title" validate:"required,max=200"`
	Description   string                  `json:"description" validate:"max=2000"`
	Role          entities.StaffRole      `json:"role" validate:"required"`
	StartTime     string                  `json:"start_time" validate:"required"`
	EndTime       string                  `json:"end_time" validate:"required"`
	Type          entities.TaskType       `json:"type" validate:"required"`
	Priority      entities.Priority       `json:"priority" validate:"required"`
	TaskDate      *string                 `json:"task_date" validate:"omitempty,datetime=2006-01-02"`
	RecurringDays *entities.RecurringDays `json:"recurring_days"`
}

type UpdateTaskRequest struct {
	Title         *string                 `json:"title" validate:"omitempty,max=200"`
	Description   *string                 `json:"description" validate:"omitempty,max=2000"`
	Role          *entities.StaffRole     `json:"role"`
	StartTime     *string                 `json:"start_time"`
	EndTime       *string                 `json:"end_time"`
	Priority      *entities.Priority      `json:"priority"`
	Status        *entities.TaskStatus    `json:"status"`
	Reason        *string                 `json:"reason"`
	TaskDate      *string                 `json:"task_date" validate:"omitempty,datetime=2006-01-02"`
	RecurringDays *entities.RecurringDays `json:"recurring_days"`
	// Date the status change applies to; defaults to today when absent.
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// TaskCompletionResult carries the updated task plus the advisory next due
// date for recurring tasks.
type TaskCompletionResult struct {
	Task           *entities.Task `json:"task"`
	NextOccurrence string         `json:"next_occurrence,omitempty"`
}

// Note related types
type CreateNoteRequest struct {
	Content  string            `json:"content" validate:"required,max=4000"`
	Priority entities.Priority `json:"priority" validate:"required"`
	Date     string            `json:"date" validate:"required,datetime=2006-01-02"`
}

type UpdateNoteRequest struct {
	Content  *string            `json:"content" validate:"omitempty,max=4000"`
	Priority *entities.Priority `json:"priority"`
}
