package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adiramot/cathlab-rota/pkg/core/roster"
	"github.com/adiramot/cathlab-rota/pkg/db"
)

// ListSchedulesStore defines the database operations needed for listing schedules
type ListSchedulesStore interface {
	GetSchedules(ctx context.Context) ([]db.Schedule, error)
}

// ListSchedules returns all saved schedules, newest first.
func ListSchedules(ctx context.Context, database ListSchedulesStore, logger *zap.Logger) ([]db.Schedule, error) {
	logger.Debug("Fetching schedules")
	schedules, err := database.GetSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	logger.Debug("Found schedules", zap.Int("count", len(schedules)))

	return schedules, nil
}

// GetScheduleStore defines the database operations needed for loading one schedule
type GetScheduleStore interface {
	GetSchedules(ctx context.Context) ([]db.Schedule, error)
	GetScheduleAssignments(ctx context.Context, scheduleID string) ([]db.Assignment, error)
}

// GetSchedule loads one saved schedule and rebuilds its day-by-day table.
func GetSchedule(ctx context.Context, database GetScheduleStore, logger *zap.Logger, scheduleID string) (*db.Schedule, *roster.Schedule, error) {
	logger.Debug("Fetching schedule", zap.String("schedule_id", scheduleID))

	schedules, err := database.GetSchedules(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	var record *db.Schedule
	for i := range schedules {
		if schedules[i].ID == scheduleID {
			record = &schedules[i]
			break
		}
	}
	if record == nil {
		return nil, nil, fmt.Errorf("schedule not found: %s", scheduleID)
	}

	assignments, err := database.GetScheduleAssignments(ctx, scheduleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	rows := make([]roster.Row, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, roster.Row{
			Day:           a.Day,
			SessionType:   a.SessionType,
			FirstDoctor:   a.FirstDoctor,
			SecondDoctor:  a.SecondDoctor,
			StandbyDoctor: a.StandbyDoctor,
			Clinic:        a.Clinic,
		})
	}

	logger.Debug("Rebuilt schedule",
		zap.String("schedule_id", scheduleID),
		zap.Int("rows", len(rows)))

	return record, &roster.Schedule{Rows: rows}, nil
}
