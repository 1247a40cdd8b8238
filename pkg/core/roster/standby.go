package roster

import (
	"fmt"
	"math/rand"

	"github.com/adiramot/cathlab-rota/pkg/core/calendar"
	"github.com/adiramot/cathlab-rota/pkg/core/model"
)

// StandbyAssigner assigns the month's on-call standby coverage. Weekends are
// placed first as Friday+Saturday blocks, weekdays are filled from the
// remaining quotas, and any day still open falls back to the special pool.
type StandbyAssigner struct {
	month       *calendar.Month
	regulars    []string
	fallback    []string
	policy      model.DutyPolicy
	unavailable Availability
	quotas      *QuotaTable
}

// NewStandbyAssigner prepares a standby assigner for one month. regulars and
// specials must be in roster order; doctors excluded by the policy never
// enter the fallback pool.
func NewStandbyAssigner(month *calendar.Month, regulars, specials []string, policy model.DutyPolicy, unavailable Availability) *StandbyAssigner {
	fallback := make([]string, 0, len(specials))
	for _, name := range specials {
		if !policy.IsStandbyExcluded(name) {
			fallback = append(fallback, name)
		}
	}
	return &StandbyAssigner{
		month:       month,
		regulars:    regulars,
		fallback:    fallback,
		policy:      policy,
		unavailable: unavailable,
		quotas:      NewQuotaTable(regulars, policy.StandbyQuotaFor),
	}
}

// Assign covers every day of the month with exactly one doctor, or returns
// an error when the fallback pool cannot close the gaps.
func (a *StandbyAssigner) Assign(rng *rand.Rand) (map[int]string, error) {
	standby := make(map[int]string, a.month.Days())

	fridays := a.month.DaysOn(calendar.Friday)
	saturdays := a.month.DaysOn(calendar.Saturday)

	// Step 1: single-weekend doctors take the first Saturday they can
	// work. That Saturday leaves the pairing pool.
	for _, name := range a.regulars {
		if !a.policy.IsSingleWeekendStandby(name) {
			continue
		}
		for i, saturday := range saturdays {
			if a.unavailable.IsAvailable(name, saturday) {
				standby[saturday] = name
				a.quotas.Consume(name)
				saturdays = append(saturdays[:i], saturdays[i+1:]...)
				break
			}
		}
	}

	// Step 2: pair the remaining Fridays and Saturdays positionally into
	// weekend blocks, each covered by one doctor for both days. Days left
	// over by uneven lists fall through to the later phases.
	blocks := min(len(fridays), len(saturdays))
	for i := 0; i < blocks; i++ {
		friday, saturday := fridays[i], saturdays[i]
		for _, name := range a.regulars {
			if a.policy.IsSingleWeekendStandby(name) {
				continue
			}
			if a.quotas.Remaining(name) < 2 {
				continue
			}
			if !a.unavailable.IsAvailable(name, friday) || !a.unavailable.IsAvailable(name, saturday) {
				continue
			}
			standby[friday] = name
			standby[saturday] = name
			a.quotas.Consume(name)
			a.quotas.Consume(name)
			break
		}
	}

	// Step 3: fill the weekdays until every quota is spent. The scan order
	// is reshuffled per day so leftover quota is not biased by roster order.
	working := make([]string, len(a.regulars))
	copy(working, a.regulars)
	for _, day := range a.month.Weekdays() {
		if a.quotas.Exhausted() {
			break
		}
		if _, taken := standby[day]; taken {
			continue
		}
		rng.Shuffle(len(working), func(i, j int) { working[i], working[j] = working[j], working[i] })
		for _, name := range working {
			if a.quotas.Remaining(name) > 0 && a.unavailable.IsAvailable(name, day) {
				standby[day] = name
				a.quotas.Consume(name)
				break
			}
		}
	}

	// Step 4: whatever is still open goes to the special doctors.
	for day := 1; day <= a.month.Days(); day++ {
		if _, taken := standby[day]; taken {
			continue
		}
		name, err := a.pickFallback(rng, day)
		if err != nil {
			return nil, err
		}
		standby[day] = name
	}

	return standby, nil
}

// pickFallback draws a special doctor for a day no regular could cover. By
// default the draw ignores unavailability; strict mode filters the pool per
// day and fails when it empties.
func (a *StandbyAssigner) pickFallback(rng *rand.Rand, day int) (string, error) {
	if len(a.fallback) == 0 {
		return "", ErrNoStandbyFallback
	}
	pool := a.fallback
	if a.policy.StrictFallbackAvailability {
		pool = make([]string, 0, len(a.fallback))
		for _, name := range a.fallback {
			if a.unavailable.IsAvailable(name, day) {
				pool = append(pool, name)
			}
		}
		if len(pool) == 0 {
			return "", fmt.Errorf("day %d: %w", day, ErrStandbyUnassignable)
		}
	}
	return pool[rng.Intn(len(pool))], nil
}
