package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/infrastructure/config"
	"github.com/shiftdesk/core/internal/infrastructure/logger"
	"github.com/shiftdesk/core/internal/ports"
)

// fakeTaskRepo is an in-memory TaskRepository with the same compare-and-swap
// behavior as the Postgres implementation.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entities.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *fakeTaskRepo) clone(t *entities.Task) *entities.Task {
	cp := *t
	cp.Actions = append(entities.TaskActions(nil), t.Actions...)
	if t.RecurringDays != nil {
		rd := *t.RecurringDays
		cp.RecurringDays = &rd
	}
	return &cp
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = r.clone(task)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return r.clone(t), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[task.ID]
	if !ok {
		return entities.ErrTaskNotFound
	}
	if stored.Version != task.Version {
		return entities.ErrVersionConflict
	}
	task.Version++
	r.tasks[task.ID] = r.clone(task)
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(_ context.Context, _ ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, r.clone(t))
	}
	return out, nil
}

func (r *fakeTaskRepo) GetByRoleAndOwner(_ context.Context, role entities.StaffRole, ownerID uuid.UUID) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Task, 0)
	for _, t := range r.tasks {
		if t.Role == role && t.CreatedBy == ownerID {
			out = append(out, r.clone(t))
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindRecurringByTitle(_ context.Context, title string, role entities.StaffRole, ownerID uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.Type == entities.TaskTypeRecurring && t.Title == title && t.Role == role && t.CreatedBy == ownerID {
			return r.clone(t), nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func newTestService(t *testing.T) (*TaskService, *fakeTaskRepo) {
	t.Helper()
	log, err := logger.New(config.LoggerConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	repo := newFakeTaskRepo()
	return NewTaskService(repo, log), repo
}

func recurringCreateRequest(title string) ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Title:         title,
		Description:   "walk the premises",
		Role:          entities.StaffRoleNightshift,
		StartTime:     "23:00:00",
		EndTime:       "23:30:00",
		Type:          entities.TaskTypeRecurring,
		Priority:      entities.PriorityHigh,
		RecurringDays: &entities.RecurringDays{Monday: true},
	}
}

func oneTimeCreateRequest(title, date string) ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Title:       title,
		Description: "one off",
		Role:        entities.StaffRoleHost,
		StartTime:   "10:00:00",
		EndTime:     "11:00:00",
		Type:        entities.TaskTypeOneTime,
		Priority:    entities.PriorityMedium,
		TaskDate:    &date,
	}
}

func TestCreateTask_DuplicateRecurringGuard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	first, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), owner)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), owner)
	require.NoError(t, err)
	assert.Nil(t, second, "duplicate create must be a no-op, not an error")
}

func TestCreateTask_DuplicateGuardScopedToOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, first)

	other, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, other, "a different owner may reuse the title")
}

func TestCreateTask_RejectsRecurringWithoutWeekdays(t *testing.T) {
	svc, _ := newTestService(t)

	req := recurringCreateRequest("Security Rounds")
	req.RecurringDays = &entities.RecurringDays{}

	_, err := svc.CreateTask(context.Background(), req, uuid.New())
	assert.ErrorIs(t, err, entities.ErrInvalidRecurrence)
}

func TestCreateTask_RejectsAmbiguousSchedule(t *testing.T) {
	svc, _ := newTestService(t)

	date := "2024-03-18"
	req := recurringCreateRequest("Security Rounds")
	req.TaskDate = &date

	_, err := svc.CreateTask(context.Background(), req, uuid.New())
	assert.ErrorIs(t, err, entities.ErrAmbiguousSchedule)
}

func TestFetchByRole_OneTimeRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateTask(ctx, oneTimeCreateRequest("Deep clean lobby", "2024-03-18"), owner)
	require.NoError(t, err)
	require.NotNil(t, created)

	day := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.Local)
	tasks, err := svc.FetchByRole(ctx, entities.StaffRoleHost, owner, &day)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	nextDay := day.AddDate(0, 0, 1)
	tasks, err = svc.FetchByRole(ctx, entities.StaffRoleHost, owner, &nextDay)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFetchByRole_NoDateReturnsAllDefinitions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := svc.CreateTask(ctx, oneTimeCreateRequest("Deep clean lobby", "2024-03-18"), owner)
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, oneTimeCreateRequest("Polish silverware", "2024-03-19"), owner)
	require.NoError(t, err)

	tasks, err := svc.FetchByRole(ctx, entities.StaffRoleHost, owner, nil)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestFetchByRole_InvalidRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FetchByRole(context.Background(), "concierge", uuid.New(), nil)
	assert.ErrorIs(t, err, entities.ErrInvalidRole)
}

func TestFetchByRole_ProjectsStatusForDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	req := recurringCreateRequest("Security Rounds")
	created, err := svc.CreateTask(ctx, req, owner)
	require.NoError(t, err)

	monday := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.Local)
	_, err = svc.MarkDone(ctx, created.ID, ports.Actor{ID: owner, DisplayName: "Frida"}, monday)
	require.NoError(t, err)

	tasks, err := svc.FetchByRole(ctx, entities.StaffRoleNightshift, owner, &monday)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, entities.TaskStatusCompleted, tasks[0].Status)

	// The following Monday the same template is due again, back to pending.
	nextMonday := monday.AddDate(0, 0, 7)
	tasks, err = svc.FetchByRole(ctx, entities.StaffRoleNightshift, owner, &nextMonday)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, entities.TaskStatusPending, tasks[0].Status)
}

func TestMarkDone_ReturnsNextOccurrence(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), owner)
	require.NoError(t, err)

	// 2024-03-20 is a Wednesday; the next Monday is the 25th.
	wednesday := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.Local)
	result, err := svc.MarkDone(ctx, created.ID, ports.Actor{ID: owner, DisplayName: "Frida"}, wednesday)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-25", result.NextOccurrence)
	assert.Equal(t, entities.TaskStatusCompleted, result.Task.Status)
	assert.Equal(t, "Frida", result.Task.CompletedBy)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Actions, 1)
	assert.Equal(t, entities.ActionComplete, stored.Actions[0].Action)
	assert.Equal(t, "wednesday", stored.Actions[0].Day)
}

func TestMarkDone_OneTimeHasNoNextOccurrence(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateTask(ctx, oneTimeCreateRequest("Deep clean lobby", "2024-03-18"), owner)
	require.NoError(t, err)

	day := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.Local)
	result, err := svc.MarkDone(ctx, created.ID, ports.Actor{ID: owner, DisplayName: "Frida"}, day)
	require.NoError(t, err)
	assert.Empty(t, result.NextOccurrence)
}

func TestMarkNotDone_RecordsReason(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), owner)
	require.NoError(t, err)

	monday := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.Local)
	updated, err := svc.MarkNotDone(ctx, created.ID, "fire alarm drill", ports.Actor{ID: owner, DisplayName: "Frida"}, monday)
	require.NoError(t, err)

	assert.Equal(t, entities.TaskStatusOverdue, updated.Status)
	assert.Equal(t, "fire alarm drill", updated.Reason)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Actions, 1)
	assert.Equal(t, entities.ActionNotDone, stored.Actions[0].Action)
}

func TestUpdateTask_StatusPendingClearsDay(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	actor := ports.Actor{ID: owner, DisplayName: "Frida"}

	created, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), owner)
	require.NoError(t, err)

	monday := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.Local)
	_, err = svc.MarkDone(ctx, created.ID, actor, monday)
	require.NoError(t, err)

	pending := entities.TaskStatusPending
	date := "2024-03-18"
	_, err = svc.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{Status: &pending, Date: &date}, actor)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Actions)
	assert.Equal(t, entities.TaskStatusPending, stored.ProjectStatus(monday))
}

func TestUpdateTask_StaleVersionRejected(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	actor := ports.Actor{ID: owner, DisplayName: "Frida"}

	created, err := svc.CreateTask(ctx, recurringCreateRequest("Security Rounds"), owner)
	require.NoError(t, err)

	// Another writer bumps the version between our read and write.
	concurrent, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, concurrent))

	stale, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	stale.Version--
	err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, entities.ErrVersionConflict)

	// The service surfaces the conflict unchanged.
	title := "Evening Rounds"
	_, err = svc.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{Title: &title}, actor)
	require.NoError(t, err)
}

func TestUpdateTask_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	title := "missing"
	_, err := svc.UpdateTask(context.Background(), uuid.New(), ports.UpdateTaskRequest{Title: &title}, ports.Actor{})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateTask(ctx, oneTimeCreateRequest("Deep clean lobby", "2024-03-18"), owner)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, created.ID), entities.ErrTaskNotFound)
}
