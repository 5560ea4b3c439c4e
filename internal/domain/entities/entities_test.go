package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidate_Recurring(t *testing.T) {
	task := recurringTask(StaffRoleHost, mondayOnly())
	assert.NoError(t, task.Validate())
}

func TestTaskValidate_RecurringWithoutWeekdays(t *testing.T) {
	task := recurringTask(StaffRoleHost, &RecurringDays{})
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)

	task.RecurringDays = nil
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)
}

func TestTaskValidate_OneTime(t *testing.T) {
	task := oneTimeTask(StaffRoleReceptionist, "2024-03-18")
	assert.NoError(t, task.Validate())
}

func TestTaskValidate_OneTimeWithoutDate(t *testing.T) {
	task := oneTimeTask(StaffRoleReceptionist, "2024-03-18")
	task.TaskDate = nil
	assert.ErrorIs(t, task.Validate(), ErrMissingTaskDate)
}

func TestTaskValidate_BothSchedulesRejected(t *testing.T) {
	task := oneTimeTask(StaffRoleReceptionist, "2024-03-18")
	task.RecurringDays = mondayOnly()
	assert.ErrorIs(t, task.Validate(), ErrAmbiguousSchedule)

	recurring := recurringTask(StaffRoleHost, mondayOnly())
	date := "2024-03-18"
	recurring.TaskDate = &date
	assert.ErrorIs(t, recurring.Validate(), ErrAmbiguousSchedule)
}

func TestTaskValidate_UnknownRole(t *testing.T) {
	task := recurringTask("concierge", mondayOnly())
	assert.ErrorIs(t, task.Validate(), ErrInvalidRole)
}

func TestRecurringDaysOn(t *testing.T) {
	rd := RecurringDays{Monday: true, Friday: true}

	assert.True(t, rd.On("monday"))
	assert.True(t, rd.On("friday"))
	assert.False(t, rd.On("tuesday"))
	assert.False(t, rd.On("someday"))
}

func TestTaskActionsScanRoundTrip(t *testing.T) {
	actions := TaskActions{{Action: ActionComplete, Day: "monday", CompletedBy: "Frida"}}

	raw, err := actions.Value()
	require.NoError(t, err)

	var scanned TaskActions
	require.NoError(t, scanned.Scan(raw))
	require.Len(t, scanned, 1)
	assert.Equal(t, "Frida", scanned[0].CompletedBy)
}

func TestTaskActionsScanNil(t *testing.T) {
	var scanned TaskActions
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StaffRoleNightshift.IsValid())
	assert.False(t, StaffRole("janitor").IsValid())
	assert.True(t, TaskStatusOverdue.IsValid())
	assert.False(t, TaskStatus("done").IsValid())
	assert.True(t, ActionNotDone.IsValid())
	assert.False(t, ActionType("skipped").IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("urgent").IsValid())
}
