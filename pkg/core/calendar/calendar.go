package calendar

// Weekday indices as used across the scheduler. The month layout is defined
// by the weekday of day 1, so everything reduces to modular arithmetic.
const (
	Sunday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Month describes the layout of a single scheduling month: its length, the
// weekday its first day falls on, and which days count as weekends or
// holidays. It carries no assignment state.
type Month struct {
	days         int
	firstWeekday int
	weekend      map[int]bool
	holidays     map[int]bool
}

// New creates a Month. days is the month length, firstWeekday is the weekday
// index of day 1 (Sunday=0), weekend lists the weekday indices treated as
// weekend, and holidays lists holiday day numbers within the month.
func New(days, firstWeekday int, weekend, holidays []int) *Month {
	m := &Month{
		days:         days,
		firstWeekday: firstWeekday,
		weekend:      make(map[int]bool, len(weekend)),
		holidays:     make(map[int]bool, len(holidays)),
	}
	for _, weekday := range weekend {
		m.weekend[weekday] = true
	}
	for _, day := range holidays {
		m.holidays[day] = true
	}
	return m
}

// Days returns the number of days in the month.
func (m *Month) Days() int {
	return m.days
}

// WeekdayOf returns the weekday index of the given day of the month.
func (m *Month) WeekdayOf(day int) int {
	return (m.firstWeekday + day - 1) % 7
}

// IsWeekend reports whether the given day falls on a weekend weekday.
func (m *Month) IsWeekend(day int) bool {
	return m.weekend[m.WeekdayOf(day)]
}

// IsHoliday reports whether the given day is a holiday.
func (m *Month) IsHoliday(day int) bool {
	return m.holidays[day]
}

// IsWeekday reports whether the given day is a working weekday. Holidays on
// weekdays still count; callers decide how to treat them.
func (m *Month) IsWeekday(day int) bool {
	return !m.IsWeekend(day)
}

// Weekdays returns every non-weekend day of the month in ascending order.
func (m *Month) Weekdays() []int {
	days := make([]int, 0, m.days)
	for day := 1; day <= m.days; day++ {
		if !m.IsWeekend(day) {
			days = append(days, day)
		}
	}
	return days
}

// DaysOn returns every day of the month falling on the given weekday index,
// in ascending order.
func (m *Month) DaysOn(weekday int) []int {
	days := make([]int, 0, 5)
	for day := 1; day <= m.days; day++ {
		if m.WeekdayOf(day) == weekday {
			days = append(days, day)
		}
	}
	return days
}
