package roster

import (
	"fmt"
	"math/rand"

	"github.com/adiramot/cathlab-rota/pkg/core/calendar"
)

// clinicDaysPerMonth is the fixed number of outpatient clinic days.
const clinicDaysPerMonth = 3

// ClinicAssigner assigns the month's outpatient clinic days between the two
// clinic doctors, keeping their counts within one of each other.
type ClinicAssigner struct {
	month   *calendar.Month
	doctors [2]string
	closed  map[int]bool
}

// NewClinicAssigner prepares a clinic assigner for one month. closedDays
// lists days the clinic cannot open.
func NewClinicAssigner(month *calendar.Month, doctors [2]string, closedDays []int) *ClinicAssigner {
	closed := make(map[int]bool, len(closedDays))
	for _, day := range closedDays {
		closed[day] = true
	}
	return &ClinicAssigner{month: month, doctors: doctors, closed: closed}
}

// Assign samples three eligible weekdays and alternates the clinic doctors
// across them: equal counts break on a coin flip, otherwise the doctor with
// fewer days goes next.
func (a *ClinicAssigner) Assign(rng *rand.Rand) (map[int]string, error) {
	eligible := make([]int, 0)
	for _, day := range a.month.Weekdays() {
		if !a.closed[day] {
			eligible = append(eligible, day)
		}
	}
	if len(eligible) < clinicDaysPerMonth {
		return nil, fmt.Errorf("%d eligible days for %d clinic days: %w",
			len(eligible), clinicDaysPerMonth, ErrInsufficientClinicDays)
	}

	counts := map[string]int{a.doctors[0]: 0, a.doctors[1]: 0}
	assignments := make(map[int]string, clinicDaysPerMonth)
	for _, pick := range rng.Perm(len(eligible))[:clinicDaysPerMonth] {
		day := eligible[pick]
		var chosen string
		switch {
		case counts[a.doctors[0]] == counts[a.doctors[1]]:
			chosen = a.doctors[rng.Intn(2)]
		case counts[a.doctors[0]] < counts[a.doctors[1]]:
			chosen = a.doctors[0]
		default:
			chosen = a.doctors[1]
		}
		assignments[day] = chosen
		counts[chosen]++
	}

	return assignments, nil
}
