package db

import "context"

// ScheduleStore defines the interface for schedule database operations
type ScheduleStore interface {
	InsertSchedule(ctx context.Context, schedule *Schedule, assignments []Assignment) error
	GetSchedules(ctx context.Context) ([]Schedule, error)
	GetScheduleAssignments(ctx context.Context, scheduleID string) ([]Assignment, error)
}
