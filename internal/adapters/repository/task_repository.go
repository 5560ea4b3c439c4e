package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/ports"
)

const taskColumns = `id, title, description, role, start_time, end_time, type, priority,
		status, reason, task_date, recurring_days, completed_by, recursive_actions,
		created_by, version, created_at, updated_at`

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, role, start_time, end_time, type,
			priority, status, reason, task_date, recurring_days, completed_by,
			recursive_actions, created_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Role, task.StartTime, task.EndTime,
		task.Type, task.Priority, task.Status, task.Reason, task.TaskDate,
		task.RecurringDays, task.CompletedBy, task.Actions, task.CreatedBy, task.Version,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

// Update writes the task back guarded by its version: the row is only touched
// when the stored version still matches, and the version is bumped in the same
// statement. No rows means either the task is gone or another writer won.
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, role = $5, start_time = $6, end_time = $7,
			priority = $8, status = $9, reason = $10, task_date = $11,
			recurring_days = $12, completed_by = $13, recursive_actions = $14,
			version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Version, task.Title, task.Description, task.Role,
		task.StartTime, task.EndTime, task.Priority, task.Status, task.Reason,
		task.TaskDate, task.RecurringDays, task.CompletedBy, task.Actions,
	).Scan(&task.Version, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if checkErr := r.db.GetContext(ctx, &exists,
				`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, task.ID); checkErr != nil {
				return fmt.Errorf("update task: %w", checkErr)
			}
			if !exists {
				return entities.ErrTaskNotFound
			}
			return entities.ErrVersionConflict
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	var (
		conditions []string
		args       []interface{}
	)

	addCondition := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Role != nil {
		addCondition("role", *filter.Role)
	}
	if filter.Type != nil {
		addCondition("type", *filter.Type)
	}
	if filter.Status != nil {
		addCondition("status", *filter.Status)
	}
	if filter.Priority != nil {
		addCondition("priority", *filter.Priority)
	}
	if filter.CreatedBy != nil {
		addCondition("created_by", *filter.CreatedBy)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time, title"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) GetByRoleAndOwner(ctx context.Context, role entities.StaffRole, ownerID uuid.UUID) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE role = $1 AND created_by = $2
		ORDER BY start_time, title`

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, role, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get tasks by role: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) FindRecurringByTitle(ctx context.Context, title string, role entities.StaffRole, ownerID uuid.UUID) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE type = 'recurring' AND title = $1 AND role = $2 AND created_by = $3
		LIMIT 1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, title, role, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find recurring task by title: %w", err)
	}

	return &task, nil
}
