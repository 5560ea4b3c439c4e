package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftdesk/core/internal/domain/entities"
)

// TaskRepository defines the interface for the task record store
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	// Update persists the task with a compare-and-swap on the version
	// column; it returns entities.ErrVersionConflict when another writer
	// got there first.
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	GetByRoleAndOwner(ctx context.Context, role entities.StaffRole, ownerID uuid.UUID) ([]*entities.Task, error)
	FindRecurringByTitle(ctx context.Context, title string, role entities.StaffRole, ownerID uuid.UUID) (*entities.Task, error)
}

// NoteRepository defines the interface for handover note storage
type NoteRepository interface {
	Create(ctx context.Context, note *entities.HandoverNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.HandoverNote, error)
	Update(ctx context.Context, note *entities.HandoverNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, date string) ([]*entities.HandoverNote, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entities.HandoverNote, error)
}

// UserRepository defines the interface for staff account storage
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter UserFilter) ([]*entities.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

// AuthRepository defines the interface for refresh token storage
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}

// Filter types for repository queries
type TaskFilter struct {
	Role      *entities.StaffRole
	Type      *entities.TaskType
	Status    *entities.TaskStatus
	Priority  *entities.Priority
	CreatedBy *uuid.UUID
	Limit     int
	Offset    int
}

type UserFilter struct {
	Role     *entities.AccountRole
	IsActive *bool
	Limit    int
	Offset   int
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
