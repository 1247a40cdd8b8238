package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/adiramot/cathlab-rota/pkg/db"
)

// InsertSchedule inserts a schedule record and its day assignments in a
// single transaction.
func (d *DB) InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule (id, month, seed, generated_at)
		VALUES ($1, $2, $3, $4)
	`, schedule.ID, schedule.Month, schedule.Seed, schedule.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, schedule_id, day, session_type, first_doctor, second_doctor, standby_doctor, clinic)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.ScheduleID, a.Day, nullable(a.SessionType), nullable(a.FirstDoctor),
			nullable(a.SecondDoctor), nullable(a.StandbyDoctor), nullable(a.Clinic))
		if err != nil {
			return fmt.Errorf("failed to insert assignment for day %d: %w", a.Day, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSchedules retrieves all schedule records, newest first
func (d *DB) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, month, seed, generated_at
		FROM schedule
		ORDER BY generated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []db.Schedule
	for rows.Next() {
		var s db.Schedule
		var generatedAt time.Time
		if err := rows.Scan(&s.ID, &s.Month, &s.Seed, &generatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		s.GeneratedAt = generatedAt.UTC().Format(time.RFC3339)
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

// GetScheduleAssignments retrieves the day assignments of one schedule,
// ordered by day.
func (d *DB) GetScheduleAssignments(ctx context.Context, scheduleID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, schedule_id, day, session_type, first_doctor, second_doctor, standby_doctor, clinic
		FROM assignment
		WHERE schedule_id = $1
		ORDER BY day
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var sessionType, firstDoctor, secondDoctor, standbyDoctor, clinic *string
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.Day, &sessionType, &firstDoctor,
			&secondDoctor, &standbyDoctor, &clinic); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.SessionType = deref(sessionType)
		a.FirstDoctor = deref(firstDoctor)
		a.SecondDoctor = deref(secondDoctor)
		a.StandbyDoctor = deref(standbyDoctor)
		a.Clinic = deref(clinic)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// nullable maps the empty-string "no duty" marker to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
