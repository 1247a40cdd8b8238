package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/adiramot/cathlab-rota/pkg/core/calendar"
	"github.com/adiramot/cathlab-rota/pkg/core/model"
)

// DoctorConfig declares one roster member. The order of doctors in the file
// is the deterministic scan order used by the assigners.
type DoctorConfig struct {
	Name string `yaml:"name" validate:"required"`
	Role string `yaml:"role" validate:"required,oneof=regular special"`
}

// QuotaOverrideConfig adjusts the default quotas for one doctor. Omitted
// counts keep the defaults.
type QuotaOverrideConfig struct {
	Doctor               string `yaml:"doctor" validate:"required"`
	CoronaryPrimary      *int   `yaml:"coronaryPrimary,omitempty" validate:"omitempty,min=0"`
	CoronarySecondary    *int   `yaml:"coronarySecondary,omitempty" validate:"omitempty,min=0"`
	TAVIPrimary          *int   `yaml:"taviPrimary,omitempty" validate:"omitempty,min=0"`
	TAVISecondary        *int   `yaml:"taviSecondary,omitempty" validate:"omitempty,min=0"`
	Standby              *int   `yaml:"standby,omitempty" validate:"omitempty,min=0"`
	SingleWeekendStandby bool   `yaml:"singleWeekendStandby,omitempty"`
}

// SessionQuotaConfig sets the default per-doctor session requirements.
type SessionQuotaConfig struct {
	CoronaryPrimary   int `yaml:"coronaryPrimary" validate:"min=0"`
	CoronarySecondary int `yaml:"coronarySecondary" validate:"min=0"`
	TAVIPrimary       int `yaml:"taviPrimary" validate:"min=0"`
	TAVISecondary     int `yaml:"taviSecondary" validate:"min=0"`
}

// PolicyConfig sets the duty rules for the month: default quotas, per-doctor
// overrides, standby exclusions, and the clinic pairing.
type PolicyConfig struct {
	Sessions                   SessionQuotaConfig    `yaml:"sessions"`
	Standby                    int                   `yaml:"standby" validate:"min=0"`
	Overrides                  []QuotaOverrideConfig `yaml:"overrides,omitempty" validate:"dive"`
	StandbyExcluded            []string              `yaml:"standbyExcluded,omitempty"`
	ClinicDoctors              []string              `yaml:"clinicDoctors" validate:"required,len=2"`
	AllowBestEffortPairs       bool                  `yaml:"allowBestEffortPairs,omitempty"`
	StrictFallbackAvailability bool                  `yaml:"strictFallbackAvailability,omitempty"`
}

// UnavailabilityConfig lists the days a doctor (or the clinic) is blocked,
// as explicit day numbers plus optional recurrence rules expanded within
// the month.
type UnavailabilityConfig struct {
	Days  []int    `yaml:"days,omitempty" validate:"omitempty,dive,min=1,max=31"`
	Rules []string `yaml:"rules,omitempty"`
}

// Config represents the application configuration
type Config struct {
	// Month selects the scheduling month as "YYYY-MM". The month length
	// and the weekday of day 1 are derived from it.
	Month string `yaml:"month" validate:"required"`

	// Weekend lists the weekday indices treated as weekend (Sunday=0).
	// Defaults to Friday and Saturday.
	Weekend []int `yaml:"weekend,omitempty" validate:"omitempty,dive,min=0,max=6"`

	Holidays     []int    `yaml:"holidays,omitempty" validate:"omitempty,dive,min=1,max=31"`
	HolidayRules []string `yaml:"holidayRules,omitempty"`

	Doctors []DoctorConfig `yaml:"doctors" validate:"required,min=1,dive"`
	Policy  PolicyConfig   `yaml:"policy"`

	SessionUnavailability map[string]UnavailabilityConfig `yaml:"sessionUnavailability,omitempty"`
	StandbyUnavailability map[string]UnavailabilityConfig `yaml:"standbyUnavailability,omitempty"`
	ClinicClosed          UnavailabilityConfig            `yaml:"clinicClosed,omitempty"`

	// DatabaseURL is the Postgres DSN used for saving and browsing
	// generated schedules. Optional; generation itself never needs it.
	DatabaseURL string `yaml:"databaseURL,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rota_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills the settings the file may omit: the Friday+Saturday
// weekend and the department's default quotas.
func applyDefaults(cfg *Config) {
	if len(cfg.Weekend) == 0 {
		cfg.Weekend = []int{calendar.Friday, calendar.Saturday}
	}

	defaults := model.DefaultPolicy()
	if cfg.Policy.Sessions == (SessionQuotaConfig{}) {
		cfg.Policy.Sessions = SessionQuotaConfig{
			CoronaryPrimary:   defaults.Sessions.CoronaryPrimary,
			CoronarySecondary: defaults.Sessions.CoronarySecondary,
			TAVIPrimary:       defaults.Sessions.TAVIPrimary,
			TAVISecondary:     defaults.Sessions.TAVISecondary,
		}
	}
	if cfg.Policy.Standby == 0 {
		cfg.Policy.Standby = defaults.StandbyQuota
	}
}

// Validate validates the configuration struct, the cross-references between
// policy and roster, and the syntax of every recurrence rule.
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	_, monthDays, err := cfg.MonthSpan()
	if err != nil {
		return err
	}

	// Roster names must be unique; they key everything downstream.
	roster := make(map[string]bool, len(cfg.Doctors))
	for _, doctor := range cfg.Doctors {
		if roster[doctor.Name] {
			return fmt.Errorf("duplicate doctor %q in roster", doctor.Name)
		}
		roster[doctor.Name] = true
	}

	if cfg.Policy.ClinicDoctors[0] == cfg.Policy.ClinicDoctors[1] {
		return fmt.Errorf("clinic doctors must be two different doctors, got %q twice", cfg.Policy.ClinicDoctors[0])
	}
	for _, name := range cfg.Policy.ClinicDoctors {
		if !roster[name] {
			return fmt.Errorf("clinic doctor %q is not on the roster", name)
		}
	}

	overridden := make(map[string]bool, len(cfg.Policy.Overrides))
	for _, override := range cfg.Policy.Overrides {
		if !roster[override.Doctor] {
			return fmt.Errorf("quota override for %q: doctor is not on the roster", override.Doctor)
		}
		if overridden[override.Doctor] {
			return fmt.Errorf("duplicate quota override for %q", override.Doctor)
		}
		overridden[override.Doctor] = true
	}

	for _, name := range cfg.Policy.StandbyExcluded {
		if !roster[name] {
			return fmt.Errorf("standby exclusion for %q: doctor is not on the roster", name)
		}
	}

	if err := checkDays("holidays", cfg.Holidays, monthDays); err != nil {
		return err
	}
	if err := checkRules("holidayRules", cfg.HolidayRules); err != nil {
		return err
	}

	for _, unavailability := range []struct {
		field   string
		entries map[string]UnavailabilityConfig
	}{
		{"sessionUnavailability", cfg.SessionUnavailability},
		{"standbyUnavailability", cfg.StandbyUnavailability},
	} {
		for name, entry := range unavailability.entries {
			if !roster[name] {
				return fmt.Errorf("%s for %q: doctor is not on the roster", unavailability.field, name)
			}
			if err := checkDays(unavailability.field+"."+name, entry.Days, monthDays); err != nil {
				return err
			}
			if err := checkRules(unavailability.field+"."+name, entry.Rules); err != nil {
				return err
			}
		}
	}

	if err := checkDays("clinicClosed", cfg.ClinicClosed.Days, monthDays); err != nil {
		return err
	}
	if err := checkRules("clinicClosed", cfg.ClinicClosed.Rules); err != nil {
		return err
	}

	return nil
}

// MonthSpan returns midnight UTC on the first day of the configured month
// and the number of days in it.
func (c *Config) MonthSpan() (start time.Time, days int, err error) {
	start, err = time.Parse("2006-01", c.Month)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("failed to parse month %q: %w", c.Month, err)
	}
	return start, start.AddDate(0, 1, -1).Day(), nil
}

// checkDays rejects day numbers beyond the end of the configured month.
func checkDays(field string, days []int, monthDays int) error {
	for _, day := range days {
		if day > monthDays {
			return fmt.Errorf("%s: day %d is out of range for a %d-day month", field, day, monthDays)
		}
	}
	return nil
}

// checkRules rejects recurrence rules that do not parse.
func checkRules(field string, rules []string) error {
	for i, rule := range rules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in %s[%d]: %w", field, i, err)
		}
	}
	return nil
}

// findConfigFile searches for rota_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "rota_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
