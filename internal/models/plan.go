package models

import "time"

// Weekday names a day column of a weekly plan
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the plan days in order, Monday first
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// TimeSlot is the part of day an activity is scheduled for
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotAnytime   TimeSlot = "anytime"
)

// PlanEntryStatus tracks the lifecycle of one scheduled activity
type PlanEntryStatus string

const (
	EntrySuggested PlanEntryStatus = "suggested"
	EntryConfirmed PlanEntryStatus = "confirmed"
	EntryCompleted PlanEntryStatus = "completed"
)

// PlanEntry is one scheduled activity within a day
type PlanEntry struct {
	ActivityID string          `json:"activityId"`
	TimeSlot   TimeSlot        `json:"timeSlot"`
	Status     PlanEntryStatus `json:"status"`
	Order      int             `json:"order"`
	Notes      string          `json:"notes,omitempty"`
}

// WeeklyPlan is one child's activity schedule for one week. Exactly one plan
// exists per (child, weekStarting) pair; the ID is derived from that pair so
// concurrent writers converge on a single document. Version supports
// optimistic merge-retry on concurrent updates.
type WeeklyPlan struct {
	ID           string                  `json:"id"`
	ChildID      string                  `json:"childId"`
	WeekStarting time.Time               `json:"weekStarting"` // Monday, date-only
	Days         map[Weekday][]PlanEntry `json:"days"`
	Version      int                     `json:"version"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// PlanID builds the deterministic document key for a (child, week) pair
func PlanID(childID string, weekStarting time.Time) string {
	return childID + "_" + weekStarting.Format("2006-01-02")
}

// WeekStart truncates t to the Monday of its week, date-only
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}

// NewWeeklyPlan creates an empty plan for the week containing weekStarting
func NewWeeklyPlan(childID string, weekStarting time.Time) *WeeklyPlan {
	start := WeekStart(weekStarting)
	days := make(map[Weekday][]PlanEntry, len(Weekdays))
	for _, d := range Weekdays {
		days[d] = nil
	}
	return &WeeklyPlan{
		ID:           PlanID(childID, start),
		ChildID:      childID,
		WeekStarting: start,
		Days:         days,
	}
}

// ContainsActivity reports whether the activity is already scheduled
// anywhere in the week. Used to enforce the no-duplicates invariant.
func (p *WeeklyPlan) ContainsActivity(activityID string) bool {
	for _, entries := range p.Days {
		for _, e := range entries {
			if e.ActivityID == activityID {
				return true
			}
		}
	}
	return false
}
