package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func mondayOnly() *RecurringDays {
	return &RecurringDays{Monday: true}
}

func recurringTask(role StaffRole, days *RecurringDays) *Task {
	return &Task{
		ID:            uuid.New(),
		Title:         "Security Rounds",
		Role:          role,
		StartTime:     "23:00:00",
		EndTime:       "23:30:00",
		Type:          TaskTypeRecurring,
		Priority:      PriorityHigh,
		Status:        TaskStatusPending,
		RecurringDays: days,
	}
}

func oneTimeTask(role StaffRole, date string) *Task {
	return &Task{
		ID:        uuid.New(),
		Title:     "Deep clean lobby",
		Role:      role,
		StartTime: "10:00:00",
		EndTime:   "12:00:00",
		Type:      TaskTypeOneTime,
		Priority:  PriorityMedium,
		Status:    TaskStatusPending,
		TaskDate:  &date,
	}
}

func TestWeekdayName(t *testing.T) {
	// 2024-03-18 is a Monday.
	assert.Equal(t, "monday", WeekdayName(localDate(2024, time.March, 18)))
	assert.Equal(t, "sunday", WeekdayName(localDate(2024, time.March, 17)))
	assert.Equal(t, "saturday", WeekdayName(localDate(2024, time.March, 23)))
}

func TestISODate(t *testing.T) {
	assert.Equal(t, "2024-03-18", ISODate(localDate(2024, time.March, 18)))
	// Late-evening times still resolve to the same local calendar date.
	assert.Equal(t, "2024-03-18", ISODate(time.Date(2024, time.March, 18, 23, 59, 0, 0, time.Local)))
}

func TestDueOn_OneTime(t *testing.T) {
	task := oneTimeTask(StaffRoleHost, "2024-03-18")

	assert.True(t, task.DueOn(localDate(2024, time.March, 18)))
	assert.False(t, task.DueOn(localDate(2024, time.March, 17)))
	assert.False(t, task.DueOn(localDate(2024, time.March, 19)))
}

func TestDueOn_RecurringAcrossDSTTransition(t *testing.T) {
	// US DST starts 2024-03-10; the window below spans it. Weekday
	// membership must hold for exactly the Mondays regardless.
	task := recurringTask(StaffRoleHost, mondayOnly())

	for d := 8; d <= 18; d++ {
		date := localDate(2024, time.March, d)
		want := date.Weekday() == time.Monday
		assert.Equalf(t, want, task.DueOn(date), "date %s", ISODate(date))
	}
}

func TestDueOn_CompletionDoesNotRemoveOccurrence(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())
	monday := localDate(2024, time.March, 18)
	task.Actions = UpsertAction(task.Actions, TaskAction{
		Action:    ActionComplete,
		Day:       WeekdayName(monday),
		Timestamp: monday.Add(10 * time.Hour),
	})

	assert.True(t, task.DueOn(monday))
	assert.Equal(t, TaskStatusCompleted, task.ProjectStatus(monday))
}

func TestFilterDue(t *testing.T) {
	monday := localDate(2024, time.March, 18)

	hostRecurring := recurringTask(StaffRoleHost, mondayOnly())
	hostOneTime := oneTimeTask(StaffRoleHost, "2024-03-18")
	hostWrongDate := oneTimeTask(StaffRoleHost, "2024-03-19")
	receptionist := recurringTask(StaffRoleReceptionist, mondayOnly())

	due := FilterDue([]*Task{hostRecurring, hostOneTime, hostWrongDate, receptionist}, StaffRoleHost, monday)

	require.Len(t, due, 2)
	assert.Equal(t, hostRecurring.ID, due[0].ID)
	assert.Equal(t, hostOneTime.ID, due[1].ID)
}

func TestFilterDue_EmptyInput(t *testing.T) {
	due := FilterDue(nil, StaffRoleHost, localDate(2024, time.March, 18))
	assert.Empty(t, due)
}

func TestUpsertAction_ReplacesByKey(t *testing.T) {
	first := TaskAction{
		Action:    ActionComplete,
		Day:       "monday",
		Timestamp: time.Date(2024, time.March, 18, 9, 0, 0, 0, time.Local),
	}
	second := TaskAction{
		Action:    ActionComplete,
		Day:       "monday",
		Timestamp: time.Date(2024, time.March, 18, 11, 0, 0, 0, time.Local),
	}

	actions := UpsertAction(nil, first)
	actions = UpsertAction(actions, second)

	require.Len(t, actions, 1)
	assert.Equal(t, second.Timestamp, actions[0].Timestamp)
}

func TestUpsertAction_KeysAreIndependent(t *testing.T) {
	actions := UpsertAction(nil, TaskAction{Action: ActionComplete, Day: "monday"})
	actions = UpsertAction(actions, TaskAction{Action: ActionNotDone, Day: "monday"})
	actions = UpsertAction(actions, TaskAction{Action: ActionComplete, Day: "tuesday"})

	assert.Len(t, actions, 3)
}

func TestUpsertAction_LedgerStaysBounded(t *testing.T) {
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	var actions TaskActions
	for round := 0; round < 5; round++ {
		for _, day := range weekdays {
			actions = UpsertAction(actions, TaskAction{Action: ActionComplete, Day: day})
			actions = UpsertAction(actions, TaskAction{Action: ActionNotDone, Day: day})
		}
	}

	// One entry per (action, weekday) pair, no matter how often staff toggle.
	assert.Len(t, actions, 2*7)
}

func TestProjectStatus_ExactDateMatch(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())
	completedAt := time.Date(2024, time.March, 18, 14, 30, 0, 0, time.Local)
	task.Actions = UpsertAction(task.Actions, TaskAction{
		Action:      ActionComplete,
		Day:         "monday",
		CompletedBy: "Frida",
		Timestamp:   completedAt,
	})

	assert.Equal(t, TaskStatusCompleted, task.ProjectStatus(localDate(2024, time.March, 18)))
	// Completion does not leak into the adjacent day...
	assert.Equal(t, TaskStatusPending, task.ProjectStatus(localDate(2024, time.March, 19)))
	// ...nor into the next week's Monday.
	assert.Equal(t, TaskStatusPending, task.ProjectStatus(localDate(2024, time.March, 25)))
}

func TestProjectStatus_NotDone(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())
	monday := localDate(2024, time.March, 18)
	task.Actions = UpsertAction(task.Actions, TaskAction{
		Action:    ActionNotDone,
		Day:       "monday",
		Timestamp: monday.Add(20 * time.Hour),
	})

	assert.Equal(t, TaskStatusOverdue, task.ProjectStatus(monday))
	assert.Equal(t, TaskStatusPending, task.ProjectStatus(localDate(2024, time.March, 19)))
}

func TestProjectStatus_CompleteSupersedesNotDone(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())
	monday := localDate(2024, time.March, 18)
	task.Actions = UpsertAction(task.Actions, TaskAction{
		Action:    ActionNotDone,
		Day:       "monday",
		Timestamp: monday.Add(9 * time.Hour),
	})
	task.Actions = UpsertAction(task.Actions, TaskAction{
		Action:    ActionComplete,
		Day:       "monday",
		Timestamp: monday.Add(11 * time.Hour),
	})

	assert.Equal(t, TaskStatusCompleted, task.ProjectStatus(monday))
}

func TestProjectStatus_OneTimeFallsBackToSnapshot(t *testing.T) {
	task := oneTimeTask(StaffRoleReceptionist, "2024-03-18")
	task.Status = TaskStatusOverdue

	assert.Equal(t, TaskStatusOverdue, task.ProjectStatus(localDate(2024, time.March, 18)))
}

func TestNextOccurrence_WednesdayToMonday(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())

	// 2024-03-20 is a Wednesday; the next Monday is the 25th.
	next := task.NextOccurrence(localDate(2024, time.March, 20))
	assert.Equal(t, "2024-03-25", next)
}

func TestNextOccurrence_SameWeekdayAdvancesFullWeek(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())

	next := task.NextOccurrence(localDate(2024, time.March, 18))
	assert.Equal(t, "2024-03-25", next)
}

func TestNextOccurrence_LandsOnSelectedWeekday(t *testing.T) {
	days := []*RecurringDays{
		{Monday: true},
		{Tuesday: true, Thursday: true},
		{Sunday: true},
		{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true, Saturday: true, Sunday: true},
	}

	from := localDate(2024, time.March, 13)
	for _, rd := range days {
		task := recurringTask(StaffRoleNightshift, rd)
		next := task.NextOccurrence(from)

		parsed, err := time.ParseInLocation("2006-01-02", next, time.Local)
		require.NoError(t, err)
		assert.True(t, rd.On(WeekdayName(parsed)))
		assert.True(t, parsed.After(from))
		assert.LessOrEqual(t, parsed.Sub(from), 7*24*time.Hour)
	}
}

func TestNextOccurrence_NoWeekdayFallsBackToNextDay(t *testing.T) {
	task := recurringTask(StaffRoleHost, &RecurringDays{})

	next := task.NextOccurrence(localDate(2024, time.March, 18))
	assert.Equal(t, "2024-03-19", next)
}

func TestSortBySchedule(t *testing.T) {
	late := oneTimeTask(StaffRoleHost, "2024-03-18")
	late.StartTime = "14:00:00"
	early := oneTimeTask(StaffRoleHost, "2024-03-18")
	early.StartTime = "07:00:00"

	tasks := []*Task{late, early}
	SortBySchedule(tasks)

	assert.Equal(t, early.ID, tasks[0].ID)
	assert.Equal(t, late.ID, tasks[1].ID)
}
