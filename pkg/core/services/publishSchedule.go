package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adiramot/cathlab-rota/pkg/db"
)

// PublishScheduleStore defines the database operations needed for saving a schedule
type PublishScheduleStore interface {
	InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.Assignment) error
}

// PublishSchedule saves a generated schedule to the database and returns the
// stored record.
func PublishSchedule(ctx context.Context, database PublishScheduleStore, logger *zap.Logger, result *GenerateScheduleResult) (*db.Schedule, error) {
	record := &db.Schedule{
		ID:          uuid.New().String(),
		Month:       result.Month,
		Seed:        result.Seed,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	assignments := make([]db.Assignment, 0, len(result.Schedule.Rows))
	for _, row := range result.Schedule.Rows {
		assignments = append(assignments, db.Assignment{
			ID:            uuid.New().String(),
			ScheduleID:    record.ID,
			Day:           row.Day,
			SessionType:   row.SessionType,
			FirstDoctor:   row.FirstDoctor,
			SecondDoctor:  row.SecondDoctor,
			StandbyDoctor: row.StandbyDoctor,
			Clinic:        row.Clinic,
		})
	}

	logger.Debug("Saving schedule",
		zap.String("schedule_id", record.ID),
		zap.String("month", record.Month),
		zap.Int("assignments", len(assignments)))

	if err := database.InsertSchedule(ctx, record, assignments); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	logger.Info("Schedule saved",
		zap.String("schedule_id", record.ID),
		zap.String("month", record.Month))

	return record, nil
}
