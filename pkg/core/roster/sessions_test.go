package roster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiramot/cathlab-rota/pkg/core/calendar"
	"github.com/adiramot/cathlab-rota/pkg/core/model"
)

// aprilMonth is a 30-day month starting on a Wednesday with Friday+Saturday
// weekends: Fridays fall on 3, 10, 17, 24 and Saturdays on 4, 11, 18, 25,
// leaving 22 weekdays.
func aprilMonth(holidays ...int) *calendar.Month {
	return calendar.New(30, calendar.Wednesday, []int{calendar.Friday, calendar.Saturday}, holidays)
}

func testRegulars() []string {
	return []string{"Hana", "Pablo", "Amos", "Wittberg", "Perl"}
}

func testSpecials() []string {
	return []string{"Giorgi", "Mark", "Kornovsky", "Hasdai", "Greenberg", "Katya"}
}

// testPolicy mirrors the department defaults: Hana owes an extra coronary
// primary but one fewer standby and takes a single Saturday, Greenberg and
// Katya never take standby, Perl and Amos run the clinic.
func testPolicy() model.DutyPolicy {
	three, four := 3, 4
	policy := model.DefaultPolicy()
	policy.Overrides = map[string]model.QuotaOverride{
		"Hana": {CoronaryPrimary: &three, Standby: &four, SingleWeekendStandby: true},
	}
	policy.StandbyExcluded = []string{"Greenberg", "Katya"}
	policy.ClinicDoctors = [2]string{"Perl", "Amos"}
	return policy
}

func TestSessionAssigner_PairsDistinctAndAvailable(t *testing.T) {
	month := aprilMonth(15)
	unavailable := Availability{}
	unavailable.MarkUnavailable("Pablo", 1)
	unavailable.MarkUnavailable("Pablo", 2)
	unavailable.MarkUnavailable("Amos", 8)

	for seed := int64(1); seed <= 5; seed++ {
		assigner := NewSessionAssigner(month, testRegulars(), testPolicy(), unavailable)
		outcome := assigner.Assign(rand.New(rand.NewSource(seed)))

		for day, session := range outcome.Sessions {
			assert.Equal(t, day, session.Day)
			assert.NotEqual(t, session.First, session.Second, "seed %d day %d", seed, day)
			assert.True(t, month.IsWeekday(day), "seed %d day %d on a weekend", seed, day)
			assert.False(t, month.IsHoliday(day), "seed %d day %d on a holiday", seed, day)
			assert.True(t, unavailable.IsAvailable(session.First, day))
			assert.True(t, unavailable.IsAvailable(session.Second, day))
		}
	}
}

func TestSessionAssigner_RespectsQuotas(t *testing.T) {
	month := aprilMonth()
	policy := testPolicy()

	for seed := int64(1); seed <= 5; seed++ {
		assigner := NewSessionAssigner(month, testRegulars(), policy, Availability{})
		outcome := assigner.Assign(rand.New(rand.NewSource(seed)))

		primaries := map[SessionType]map[string]int{SessionCoronary: {}, SessionTAVI: {}}
		secondaries := map[SessionType]map[string]int{SessionCoronary: {}, SessionTAVI: {}}
		for _, session := range outcome.Sessions {
			primaries[session.Type][session.First]++
			secondaries[session.Type][session.Second]++
		}

		for _, name := range testRegulars() {
			quotas := policy.SessionQuotasFor(name)
			assert.LessOrEqual(t, primaries[SessionCoronary][name], quotas.CoronaryPrimary)
			assert.LessOrEqual(t, secondaries[SessionCoronary][name], quotas.CoronarySecondary)
			assert.LessOrEqual(t, primaries[SessionTAVI][name], quotas.TAVIPrimary)
			assert.LessOrEqual(t, secondaries[SessionTAVI][name], quotas.TAVISecondary)
		}
	}
}

func TestSessionAssigner_EveryWeekdayAssignedOrSkipped(t *testing.T) {
	month := aprilMonth()
	assigner := NewSessionAssigner(month, testRegulars(), testPolicy(), Availability{})
	outcome := assigner.Assign(rand.New(rand.NewSource(3)))

	assert.Equal(t, len(month.Weekdays()), len(outcome.Sessions)+len(outcome.SkippedDays))

	// TAVI quotas (one per position per doctor) cannot cover its half of
	// the 22 weekdays, so skipped days must exist.
	assert.NotEmpty(t, outcome.SkippedDays)
	for i := 1; i < len(outcome.SkippedDays); i++ {
		assert.Greater(t, outcome.SkippedDays[i], outcome.SkippedDays[i-1])
	}
}

func TestSessionAssigner_HolidaysNeverAssigned(t *testing.T) {
	month := aprilMonth(1, 2, 29)
	assigner := NewSessionAssigner(month, testRegulars(), testPolicy(), Availability{})
	outcome := assigner.Assign(rand.New(rand.NewSource(11)))

	for _, holiday := range []int{1, 2, 29} {
		assert.NotContains(t, outcome.Sessions, holiday)
		// Holidays are not anomalies, so they are not reported as skipped.
		assert.NotContains(t, outcome.SkippedDays, holiday)
	}
}

func TestSessionAssigner_SkipsDaysOnceQuotaPoolEmpty(t *testing.T) {
	month := aprilMonth()
	// No doctor owes secondary sessions, so no day can be staffed.
	policy := model.DutyPolicy{
		Sessions: model.SessionQuotas{CoronaryPrimary: 2, TAVIPrimary: 1},
	}
	assigner := NewSessionAssigner(month, testRegulars(), policy, Availability{})
	outcome := assigner.Assign(rand.New(rand.NewSource(1)))

	assert.Empty(t, outcome.Sessions)
	assert.Len(t, outcome.SkippedDays, len(month.Weekdays()))
}

func TestSessionAssigner_GivesUpOnFullyUnavailableMonth(t *testing.T) {
	month := aprilMonth()
	unavailable := Availability{}
	for _, name := range testRegulars() {
		for day := 1; day <= month.Days(); day++ {
			unavailable.MarkUnavailable(name, day)
		}
	}

	assigner := NewSessionAssigner(month, testRegulars(), testPolicy(), unavailable)
	outcome := assigner.Assign(rand.New(rand.NewSource(1)))

	// The retry budget must give every day up rather than hang.
	assert.Empty(t, outcome.Sessions)
	assert.Len(t, outcome.SkippedDays, len(month.Weekdays()))
}

func TestSessionAssigner_StrictModeSkipsUnpairableDay(t *testing.T) {
	one := 1
	month := calendar.New(2, calendar.Sunday, []int{calendar.Friday, calendar.Saturday}, nil)
	policy := model.DutyPolicy{
		Overrides: map[string]model.QuotaOverride{
			"Solo": {CoronaryPrimary: &one, CoronarySecondary: &one},
		},
	}

	assigner := NewSessionAssigner(month, []string{"Solo"}, policy, Availability{})
	outcome := assigner.Assign(rand.New(rand.NewSource(1)))

	// A lone doctor cannot fill both positions, so the coronary day skips.
	assert.Empty(t, outcome.Sessions)
	assert.Len(t, outcome.SkippedDays, 2)
}

func TestSessionAssigner_BestEffortAllowsRepeatDoctor(t *testing.T) {
	one := 1
	month := calendar.New(2, calendar.Sunday, []int{calendar.Friday, calendar.Saturday}, nil)
	policy := model.DutyPolicy{
		AllowBestEffortPairs: true,
		Overrides: map[string]model.QuotaOverride{
			"Solo": {CoronaryPrimary: &one, CoronarySecondary: &one},
		},
	}

	assigner := NewSessionAssigner(month, []string{"Solo"}, policy, Availability{})
	outcome := assigner.Assign(rand.New(rand.NewSource(1)))

	require.Len(t, outcome.Sessions, 1)
	for _, session := range outcome.Sessions {
		assert.Equal(t, "Solo", session.First)
		assert.Equal(t, "Solo", session.Second)
	}
}

func TestSessionAssigner_DeterministicForSeed(t *testing.T) {
	month := aprilMonth(15)
	unavailable := Availability{}
	unavailable.MarkUnavailable("Perl", 9)

	first := NewSessionAssigner(month, testRegulars(), testPolicy(), unavailable).
		Assign(rand.New(rand.NewSource(42)))
	second := NewSessionAssigner(month, testRegulars(), testPolicy(), unavailable).
		Assign(rand.New(rand.NewSource(42)))

	assert.Equal(t, first, second)
}
