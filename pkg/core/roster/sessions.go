package roster

import (
	"math/rand"
	"sort"

	"github.com/adiramot/cathlab-rota/pkg/core/calendar"
	"github.com/adiramot/cathlab-rota/pkg/core/model"
)

const (
	// maxPairSelectionAttempts bounds how long a day's session pairing may
	// be retried before the day is given up as unassignable.
	maxPairSelectionAttempts = 200

	// maxDistinctSecondaryDraws bounds the redraw loop that steers the
	// secondary pick away from the primary.
	maxDistinctSecondaryDraws = 1000
)

// SessionAssigner assigns the month's lab sessions. Weekdays are shuffled
// and split between coronary and TAVI procedures, then each day gets a
// primary and a secondary operator drawn from the doctors who still owe
// sessions of that kind.
type SessionAssigner struct {
	month       *calendar.Month
	unavailable Availability
	bestEffort  bool

	coronaryPrimary   *QuotaTable
	coronarySecondary *QuotaTable
	taviPrimary       *QuotaTable
	taviSecondary     *QuotaTable
}

// SessionOutcome reports the assigned sessions and the weekdays that ended
// up without one. Skipped days are normal once quotas run dry; they are not
// errors.
type SessionOutcome struct {
	Sessions    map[int]Session
	SkippedDays []int
}

// NewSessionAssigner prepares a session assigner for one month. regulars
// must be in roster order; the four quota tables are derived from the policy.
func NewSessionAssigner(month *calendar.Month, regulars []string, policy model.DutyPolicy, unavailable Availability) *SessionAssigner {
	return &SessionAssigner{
		month:       month,
		unavailable: unavailable,
		bestEffort:  policy.AllowBestEffortPairs,
		coronaryPrimary: NewQuotaTable(regulars, func(name string) int {
			return policy.SessionQuotasFor(name).CoronaryPrimary
		}),
		coronarySecondary: NewQuotaTable(regulars, func(name string) int {
			return policy.SessionQuotasFor(name).CoronarySecondary
		}),
		taviPrimary: NewQuotaTable(regulars, func(name string) int {
			return policy.SessionQuotasFor(name).TAVIPrimary
		}),
		taviSecondary: NewQuotaTable(regulars, func(name string) int {
			return policy.SessionQuotasFor(name).TAVISecondary
		}),
	}
}

// Assign runs the session assignment over the whole month.
func (a *SessionAssigner) Assign(rng *rand.Rand) *SessionOutcome {
	outcome := &SessionOutcome{Sessions: make(map[int]Session)}

	// Step 1: shuffle the weekdays and split them at the midpoint between
	// the two procedure types. Holidays keep their slot in the split so
	// the coronary/TAVI balance does not depend on where they land, but
	// they never receive a session themselves.
	days := a.month.Weekdays()
	rng.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })
	halfPoint := len(days) / 2

	for i, day := range days {
		if a.month.IsHoliday(day) {
			continue
		}

		sessionType := SessionTAVI
		if i < halfPoint {
			sessionType = SessionCoronary
		}
		primary, secondary := a.tables(sessionType)

		// Step 2: candidates are doctors who still owe a session in the
		// position. An empty pool means the quota is spent and the day
		// stays open.
		firstCandidates := primary.Eligible()
		secondCandidates := secondary.Eligible()
		if len(firstCandidates) == 0 || len(secondCandidates) == 0 {
			outcome.SkippedDays = append(outcome.SkippedDays, day)
			continue
		}

		// Step 3: draw the pair under the retry budget.
		first, second, ok := a.pickPair(rng, day, firstCandidates, secondCandidates)
		if !ok {
			outcome.SkippedDays = append(outcome.SkippedDays, day)
			continue
		}

		outcome.Sessions[day] = Session{Day: day, Type: sessionType, First: first, Second: second}
		primary.Consume(first)
		secondary.Consume(second)
	}

	sort.Ints(outcome.SkippedDays)
	return outcome
}

// pickPair draws a primary and a secondary doctor who are both available on
// the given day. Each position keeps the first workable draw it gets; the
// whole selection is bounded so a day with no workable pair is given up
// instead of spun on forever.
func (a *SessionAssigner) pickPair(rng *rand.Rand, day int, firstCandidates, secondCandidates []string) (string, string, bool) {
	var first, second string

	for attempt := 0; attempt < maxPairSelectionAttempts; attempt++ {
		if first == "" {
			draw := firstCandidates[rng.Intn(len(firstCandidates))]
			if draw != second && a.unavailable.IsAvailable(draw, day) {
				first = draw
			}
		}
		if second == "" {
			draw := a.drawSecondary(rng, secondCandidates, first)
			if (a.bestEffort || draw != first) && a.unavailable.IsAvailable(draw, day) {
				second = draw
			}
		}
		if first != "" && second != "" {
			return first, second, true
		}
	}

	return "", "", false
}

// drawSecondary draws a secondary candidate, redrawing on a collision with
// the primary. Once the draw budget is spent the colliding candidate is
// returned anyway and the caller decides whether it may stand.
func (a *SessionAssigner) drawSecondary(rng *rand.Rand, candidates []string, first string) string {
	draw := candidates[rng.Intn(len(candidates))]
	for attempts := 0; draw == first && attempts < maxDistinctSecondaryDraws; attempts++ {
		draw = candidates[rng.Intn(len(candidates))]
	}
	return draw
}

func (a *SessionAssigner) tables(sessionType SessionType) (primary, secondary *QuotaTable) {
	if sessionType == SessionCoronary {
		return a.coronaryPrimary, a.coronarySecondary
	}
	return a.taviPrimary, a.taviSecondary
}
