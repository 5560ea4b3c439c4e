package entities

import (
	"sort"
	"strings"
	"time"
)

// ISODate formats the local calendar date of t as YYYY-MM-DD. Date
// comparisons throughout the scheduling logic are string comparisons on this
// representation, never time.Time equality, so a date survives round trips
// through the store without timezone drift.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekdayName returns the lowercase weekday name of the local calendar date
// of t. Callers pass a date already normalized to local midnight; no timezone
// conversion happens here.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// DueOn reports whether the task has an occurrence on the given date. A
// one-time task is due only on its exact task date; a recurring task is due
// on every date whose weekday it selects. Dueness is membership only:
// completing an occurrence does not remove it from the day's schedule, it
// shows up with a completed projected status instead.
func (t *Task) DueOn(date time.Time) bool {
	switch t.Type {
	case TaskTypeOneTime:
		return t.TaskDate != nil && *t.TaskDate == ISODate(date)
	case TaskTypeRecurring:
		return t.RecurringDays != nil && t.RecurringDays.On(WeekdayName(date))
	default:
		return false
	}
}

// FilterDue returns the tasks belonging to role that are due on date,
// preserving input order. Empty input yields empty output.
func FilterDue(tasks []*Task, role StaffRole, date time.Time) []*Task {
	due := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Role == role && t.DueOn(date) {
			due = append(due, t)
		}
	}
	return due
}

// SortBySchedule orders tasks by start time, then title for a stable display
// order within a time block.
func SortBySchedule(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].StartTime != tasks[j].StartTime {
			return tasks[i].StartTime < tasks[j].StartTime
		}
		return tasks[i].Title < tasks[j].Title
	})
}

// UpsertAction replaces any ledger entry with the same (Action, Day) key and
// appends the new entry. Applying the same key twice leaves exactly one entry
// with the latest timestamp, so the ledger is bounded at one entry per action
// type per weekday. Pure; the caller persists the result.
func UpsertAction(actions TaskActions, action TaskAction) TaskActions {
	out := make(TaskActions, 0, len(actions)+1)
	for _, a := range actions {
		if a.Action == action.Action && a.Day == action.Day {
			continue
		}
		out = append(out, a)
	}
	return append(out, action)
}

// actionOn reports whether the ledger holds an entry of the given type whose
// timestamp falls on the calendar date day.
func (t *Task) actionOn(kind ActionType, day string) bool {
	for _, a := range t.Actions {
		if a.Action == kind && ISODate(a.Timestamp) == day {
			return true
		}
	}
	return false
}

// CompletedOn reports whether a complete action was recorded on the exact
// calendar date of asOf. This is the strict per-occurrence check: matching is
// by calendar date, not weekday name, so completing this Monday says nothing
// about next Monday.
func (t *Task) CompletedOn(asOf time.Time) bool {
	return t.actionOn(ActionComplete, ISODate(asOf))
}

// ProjectStatus derives the user-facing status of the task for the given
// date from the completion ledger. A complete entry on the date wins over a
// not-done entry on the same date. One-time tasks with an empty ledger fall
// back to the cached Status snapshot. Read-only.
func (t *Task) ProjectStatus(asOf time.Time) TaskStatus {
	day := ISODate(asOf)
	if t.actionOn(ActionComplete, day) {
		return TaskStatusCompleted
	}
	if t.actionOn(ActionNotDone, day) {
		return TaskStatusOverdue
	}
	if t.IsOneTime() && len(t.Actions) == 0 && t.Status.IsValid() {
		return t.Status
	}
	return TaskStatusPending
}

// NextOccurrence computes the next date after from on which a recurring task
// is due, as YYYY-MM-DD. It scans forward at most seven days, which always
// terminates when at least one weekday is selected. With no weekday selected
// it degrades to the next day; Validate rejects that shape at create time.
// The result is advisory: no new task row is materialized, the template is
// simply re-selected by FilterDue on that date.
func (t *Task) NextOccurrence(from time.Time) string {
	if t.RecurringDays != nil {
		for i := 1; i <= 7; i++ {
			next := from.AddDate(0, 0, i)
			if t.RecurringDays.On(WeekdayName(next)) {
				return ISODate(next)
			}
		}
	}
	return ISODate(from.AddDate(0, 0, 1))
}
