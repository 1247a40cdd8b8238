package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Month: "2026-04",
		Doctors: []DoctorConfig{
			{Name: "Hana", Role: "regular"},
			{Name: "Pablo", Role: "regular"},
			{Name: "Amos", Role: "regular"},
			{Name: "Perl", Role: "regular"},
			{Name: "Giorgi", Role: "special"},
			{Name: "Greenberg", Role: "special"},
		},
		Policy: PolicyConfig{
			ClinicDoctors: []string{"Perl", "Amos"},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	quota := 3
	cfg := validConfig()
	cfg.Holidays = []int{15}
	cfg.HolidayRules = []string{"FREQ=YEARLY;BYMONTH=4;BYMONTHDAY=23"}
	cfg.Policy.Overrides = []QuotaOverrideConfig{
		{Doctor: "Hana", CoronaryPrimary: &quota, SingleWeekendStandby: true},
	}
	cfg.Policy.StandbyExcluded = []string{"Greenberg"}
	cfg.SessionUnavailability = map[string]UnavailabilityConfig{
		"Pablo": {Days: []int{7, 8}},
	}
	cfg.StandbyUnavailability = map[string]UnavailabilityConfig{
		"Giorgi": {Rules: []string{"FREQ=WEEKLY;BYDAY=MO"}},
	}
	cfg.ClinicClosed = UnavailabilityConfig{Days: []int{2}}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingMonth(t *testing.T) {
	cfg := validConfig()
	cfg.Month = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnparseableMonth(t *testing.T) {
	cfg := validConfig()
	cfg.Month = "April 2026"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse month")
}

func TestValidate_InvalidRole(t *testing.T) {
	cfg := validConfig()
	cfg.Doctors[0].Role = "locum"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_DuplicateDoctor(t *testing.T) {
	cfg := validConfig()
	cfg.Doctors = append(cfg.Doctors, DoctorConfig{Name: "Hana", Role: "regular"})

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate doctor")
}

func TestValidate_ClinicDoctorNotOnRoster(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.ClinicDoctors = []string{"Perl", "Nobody"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not on the roster")
}

func TestValidate_ClinicDoctorsIdentical(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.ClinicDoctors = []string{"Perl", "Perl"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "two different doctors")
}

func TestValidate_ClinicDoctorsWrongLength(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.ClinicDoctors = []string{"Perl"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_OverrideForUnknownDoctor(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.Overrides = []QuotaOverrideConfig{{Doctor: "Nobody"}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not on the roster")
}

func TestValidate_DuplicateOverride(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.Overrides = []QuotaOverrideConfig{
		{Doctor: "Hana"},
		{Doctor: "Hana"},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate quota override")
}

func TestValidate_StandbyExclusionForUnknownDoctor(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.StandbyExcluded = []string{"Nobody"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not on the roster")
}

func TestValidate_HolidayPastEndOfMonth(t *testing.T) {
	cfg := validConfig()
	cfg.Holidays = []int{31} // 2026-04 has 30 days

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestValidate_InvalidHolidayRule(t *testing.T) {
	cfg := validConfig()
	cfg.HolidayRules = []string{"INVALID_RRULE_SYNTAX"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_UnavailabilityForUnknownDoctor(t *testing.T) {
	cfg := validConfig()
	cfg.StandbyUnavailability = map[string]UnavailabilityConfig{
		"Nobody": {Days: []int{1}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not on the roster")
}

func TestValidate_UnavailabilityDayPastEndOfMonth(t *testing.T) {
	cfg := validConfig()
	cfg.SessionUnavailability = map[string]UnavailabilityConfig{
		"Pablo": {Days: []int{31}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestValidate_InvalidUnavailabilityRule(t *testing.T) {
	cfg := validConfig()
	cfg.SessionUnavailability = map[string]UnavailabilityConfig{
		"Pablo": {Rules: []string{"NOT_A_RULE"}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validYAML := `
month: "2026-04"
holidays: [15]
holidayRules:
  - "FREQ=YEARLY;BYMONTH=4;BYMONTHDAY=23"
doctors:
  - name: "Hana"
    role: "regular"
  - name: "Pablo"
    role: "regular"
  - name: "Amos"
    role: "regular"
  - name: "Perl"
    role: "regular"
  - name: "Giorgi"
    role: "special"
  - name: "Greenberg"
    role: "special"
policy:
  overrides:
    - doctor: "Hana"
      coronaryPrimary: 3
      standby: 4
      singleWeekendStandby: true
  standbyExcluded:
    - "Greenberg"
  clinicDoctors: ["Perl", "Amos"]
sessionUnavailability:
  Pablo:
    days: [7, 8]
standbyUnavailability:
  Giorgi:
    rules:
      - "FREQ=WEEKLY;BYDAY=MO"
clinicClosed:
  days: [2]
databaseURL: "postgres://localhost:5432/rota"
`

	err := os.WriteFile(configPath, []byte(validYAML), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "2026-04", cfg.Month)
	assert.Equal(t, []int{15}, cfg.Holidays)
	require.Len(t, cfg.Doctors, 6)
	assert.Equal(t, "Hana", cfg.Doctors[0].Name)
	assert.Equal(t, "special", cfg.Doctors[4].Role)
	assert.Equal(t, []string{"Perl", "Amos"}, cfg.Policy.ClinicDoctors)
	assert.Equal(t, []int{7, 8}, cfg.SessionUnavailability["Pablo"].Days)
	assert.Equal(t, []int{2}, cfg.ClinicClosed.Days)
	assert.Equal(t, "postgres://localhost:5432/rota", cfg.DatabaseURL)

	require.Len(t, cfg.Policy.Overrides, 1)
	override := cfg.Policy.Overrides[0]
	assert.Equal(t, "Hana", override.Doctor)
	require.NotNil(t, override.CoronaryPrimary)
	assert.Equal(t, 3, *override.CoronaryPrimary)
	assert.Nil(t, override.CoronarySecondary)
	require.NotNil(t, override.Standby)
	assert.Equal(t, 4, *override.Standby)
	assert.True(t, override.SingleWeekendStandby)

	// Omitted settings get the department defaults.
	assert.Equal(t, []int{5, 6}, cfg.Weekend)
	assert.Equal(t, 2, cfg.Policy.Sessions.CoronaryPrimary)
	assert.Equal(t, 2, cfg.Policy.Sessions.CoronarySecondary)
	assert.Equal(t, 1, cfg.Policy.Sessions.TAVIPrimary)
	assert.Equal(t, 1, cfg.Policy.Sessions.TAVISecondary)
	assert.Equal(t, 5, cfg.Policy.Standby)
}

func TestLoadFromPath_ExplicitPolicyKept(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "explicit_policy.yaml")

	explicitYAML := `
month: "2026-04"
weekend: [0, 6]
doctors:
  - name: "Hana"
    role: "regular"
  - name: "Pablo"
    role: "regular"
policy:
  sessions:
    coronaryPrimary: 4
    coronarySecondary: 4
    taviPrimary: 2
    taviSecondary: 2
  standby: 6
  clinicDoctors: ["Hana", "Pablo"]
`

	err := os.WriteFile(configPath, []byte(explicitYAML), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 6}, cfg.Weekend)
	assert.Equal(t, 4, cfg.Policy.Sessions.CoronaryPrimary)
	assert.Equal(t, 2, cfg.Policy.Sessions.TAVIPrimary)
	assert.Equal(t, 6, cfg.Policy.Standby)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
month: "2026-04"
doctors:
  - name: "Hana"
    role: "regular"
  - name: "Pablo"
    role: "regular"
# Missing policy.clinicDoctors
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
month: "2026-04"
  invalid indentation
doctors: []
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestMonthSpan(t *testing.T) {
	cfg := &Config{Month: "2026-04"}
	start, days, err := cfg.MonthSpan()
	require.NoError(t, err)
	assert.Equal(t, 30, days)
	assert.Equal(t, time.Wednesday, start.Weekday())
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), start)

	cfg = &Config{Month: "2026-02"}
	_, days, err = cfg.MonthSpan()
	require.NoError(t, err)
	assert.Equal(t, 28, days)

	cfg = &Config{Month: "2024-02"}
	_, days, err = cfg.MonthSpan()
	require.NoError(t, err)
	assert.Equal(t, 29, days)
}
