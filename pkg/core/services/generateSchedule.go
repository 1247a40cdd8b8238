package services

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/adiramot/cathlab-rota/internal/config"
	"github.com/adiramot/cathlab-rota/pkg/core/roster"
)

// GenerateScheduleResult contains the generated schedule and the inputs that
// produced it. The same month, config, and seed always reproduce the same
// schedule.
type GenerateScheduleResult struct {
	Month              string
	Seed               int64
	Schedule           *roster.Schedule
	SkippedSessionDays []int
}

// GenerateSchedule builds the full duty schedule for the configured month:
// lab sessions on weekdays, standby cover on every day, and three clinic
// days. All randomness comes from the seed.
func GenerateSchedule(cfg *config.Config, logger *zap.Logger, seed int64) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("month", cfg.Month),
		zap.Int64("seed", seed))

	monthStart, monthDays, err := cfg.MonthSpan()
	if err != nil {
		return nil, err
	}

	// Step 1: Derive the month grid
	month, err := buildMonth(cfg, monthStart, monthDays)
	if err != nil {
		return nil, fmt.Errorf("failed to build month: %w", err)
	}
	logger.Debug("Built month grid",
		zap.String("month", cfg.Month),
		zap.Int("days", month.Days()),
		zap.Int("weekdays", len(month.Weekdays())))

	// Step 2: Split the roster and build the duty policy
	regulars, specials := splitRoster(cfg.Doctors)
	logger.Debug("Split roster",
		zap.Int("regulars", len(regulars)),
		zap.Int("specials", len(specials)))

	if len(regulars) == 0 {
		return nil, fmt.Errorf("no regular doctors on the roster")
	}

	policy := buildPolicy(cfg)

	// Step 3: Expand unavailability into per-day lookups
	sessionUnavailable, err := buildAvailability(cfg.SessionUnavailability, monthStart, monthDays)
	if err != nil {
		return nil, err
	}
	standbyUnavailable, err := buildAvailability(cfg.StandbyUnavailability, monthStart, monthDays)
	if err != nil {
		return nil, err
	}
	clinicClosed, err := expandClosedDays(cfg.ClinicClosed, monthStart, monthDays)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	// Step 4: Assign the lab sessions
	logger.Info("Assigning sessions")
	sessionAssigner := roster.NewSessionAssigner(month, doctorNames(regulars), policy, sessionUnavailable)
	sessionOutcome := sessionAssigner.Assign(rng)
	logger.Info("Sessions assigned",
		zap.Int("assigned", len(sessionOutcome.Sessions)),
		zap.Int("skipped_days", len(sessionOutcome.SkippedDays)))
	if len(sessionOutcome.SkippedDays) > 0 {
		logger.Warn("Weekdays left without a session pair",
			zap.Ints("days", sessionOutcome.SkippedDays))
	}

	// Step 5: Assign standby cover for every day of the month
	logger.Info("Assigning standby cover")
	standbyAssigner := roster.NewStandbyAssigner(month, doctorNames(regulars), doctorNames(specials), policy, standbyUnavailable)
	standby, err := standbyAssigner.Assign(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to assign standby cover: %w", err)
	}
	logger.Info("Standby cover assigned", zap.Int("days", len(standby)))

	// Step 6: Pick the clinic days
	logger.Info("Assigning clinic days")
	clinicAssigner := roster.NewClinicAssigner(month, policy.ClinicDoctors, clinicClosed)
	clinic, err := clinicAssigner.Assign(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to assign clinic days: %w", err)
	}

	// Step 7: Merge the three duties into the day-by-day schedule
	schedule := roster.BuildSchedule(month, sessionOutcome.Sessions, standby, clinic)
	logger.Info("Schedule generated",
		zap.String("month", cfg.Month),
		zap.Int64("seed", seed),
		zap.Int("rows", len(schedule.Rows)))

	return &GenerateScheduleResult{
		Month:              cfg.Month,
		Seed:               seed,
		Schedule:           schedule,
		SkippedSessionDays: sessionOutcome.SkippedDays,
	}, nil
}
