package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/adiramot/cathlab-rota/internal/config"
	"github.com/adiramot/cathlab-rota/pkg/core/calendar"
	"github.com/adiramot/cathlab-rota/pkg/core/model"
	"github.com/adiramot/cathlab-rota/pkg/core/roster"
)

// splitRoster separates the configured doctors into regulars and specials,
// preserving roster order within each group.
func splitRoster(doctors []config.DoctorConfig) (regulars, specials []model.Doctor) {
	for _, d := range doctors {
		doctor := model.Doctor{Name: d.Name, Role: model.Role(d.Role)}
		switch doctor.Role {
		case model.RoleRegular:
			regulars = append(regulars, doctor)
		case model.RoleSpecial:
			specials = append(specials, doctor)
		}
	}
	return regulars, specials
}

// doctorNames extracts names from a list of doctors, preserving order
func doctorNames(doctors []model.Doctor) []string {
	names := make([]string, len(doctors))
	for i, doctor := range doctors {
		names[i] = doctor.Name
	}
	return names
}

// expandRuleDays expands recurrence rules into day numbers within the month.
// Each rule is anchored at the first of the month and only occurrences inside
// the month are kept.
func expandRuleDays(rules []string, monthStart time.Time, monthDays int) ([]int, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	monthEnd := monthStart.AddDate(0, 0, monthDays-1)

	var days []int
	for i, ruleStr := range rules {
		rule, err := rrule.StrToRRule(ruleStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule %d: %w", i, err)
		}

		rule.DTStart(monthStart)
		for _, occurrence := range rule.Between(monthStart, monthEnd, true) {
			days = append(days, occurrence.Day())
		}
	}

	return days, nil
}

// buildAvailability converts per-doctor unavailability config into the
// per-day lookup the assigners use, expanding recurrence rules within the
// month.
func buildAvailability(entries map[string]config.UnavailabilityConfig, monthStart time.Time, monthDays int) (roster.Availability, error) {
	availability := make(roster.Availability)
	for name, entry := range entries {
		for _, day := range entry.Days {
			availability.MarkUnavailable(name, day)
		}

		ruleDays, err := expandRuleDays(entry.Rules, monthStart, monthDays)
		if err != nil {
			return nil, fmt.Errorf("failed to expand unavailability rules for %s: %w", name, err)
		}
		for _, day := range ruleDays {
			availability.MarkUnavailable(name, day)
		}
	}
	return availability, nil
}

// expandClosedDays expands the clinic closure config into a day list.
func expandClosedDays(entry config.UnavailabilityConfig, monthStart time.Time, monthDays int) ([]int, error) {
	closed := append([]int{}, entry.Days...)

	ruleDays, err := expandRuleDays(entry.Rules, monthStart, monthDays)
	if err != nil {
		return nil, fmt.Errorf("failed to expand clinic closure rules: %w", err)
	}
	closed = append(closed, ruleDays...)

	return closed, nil
}

// buildPolicy converts the config policy block into the duty policy used by
// the assigners.
func buildPolicy(cfg *config.Config) model.DutyPolicy {
	policy := model.DutyPolicy{
		Sessions: model.SessionQuotas{
			CoronaryPrimary:   cfg.Policy.Sessions.CoronaryPrimary,
			CoronarySecondary: cfg.Policy.Sessions.CoronarySecondary,
			TAVIPrimary:       cfg.Policy.Sessions.TAVIPrimary,
			TAVISecondary:     cfg.Policy.Sessions.TAVISecondary,
		},
		StandbyQuota:               cfg.Policy.Standby,
		Overrides:                  make(map[string]model.QuotaOverride, len(cfg.Policy.Overrides)),
		StandbyExcluded:            cfg.Policy.StandbyExcluded,
		ClinicDoctors:              [2]string{cfg.Policy.ClinicDoctors[0], cfg.Policy.ClinicDoctors[1]},
		AllowBestEffortPairs:       cfg.Policy.AllowBestEffortPairs,
		StrictFallbackAvailability: cfg.Policy.StrictFallbackAvailability,
	}

	for _, override := range cfg.Policy.Overrides {
		policy.Overrides[override.Doctor] = model.QuotaOverride{
			CoronaryPrimary:      override.CoronaryPrimary,
			CoronarySecondary:    override.CoronarySecondary,
			TAVIPrimary:          override.TAVIPrimary,
			TAVISecondary:        override.TAVISecondary,
			Standby:              override.Standby,
			SingleWeekendStandby: override.SingleWeekendStandby,
		}
	}

	return policy
}

// buildMonth derives the month grid from the config: length, first weekday,
// weekend days, and holidays from both explicit days and recurrence rules.
func buildMonth(cfg *config.Config, monthStart time.Time, monthDays int) (*calendar.Month, error) {
	holidays := append([]int{}, cfg.Holidays...)

	ruleDays, err := expandRuleDays(cfg.HolidayRules, monthStart, monthDays)
	if err != nil {
		return nil, fmt.Errorf("failed to expand holiday rules: %w", err)
	}
	holidays = append(holidays, ruleDays...)

	return calendar.New(monthDays, int(monthStart.Weekday()), cfg.Weekend, holidays), nil
}
