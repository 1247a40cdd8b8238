// Package roster implements the monthly duty assignment: catheter lab
// sessions, on-call standby coverage, and outpatient clinic days. Each duty
// has its own assigner owning its own quota state; a run wires them to one
// seeded random source so identical inputs reproduce identical schedules.
package roster

// SessionType identifies the procedure performed in a lab session.
type SessionType string

const (
	SessionCoronary SessionType = "coronary"
	SessionTAVI     SessionType = "TAVI"
)

// Session is a single day's lab session with its two-doctor team.
type Session struct {
	Day    int
	Type   SessionType
	First  string
	Second string
}

// Availability maps doctor names to the set of month days they cannot work.
// Doctors with no entry are available every day.
type Availability map[string]map[int]bool

// IsAvailable reports whether the named doctor can work the given day.
func (a Availability) IsAvailable(name string, day int) bool {
	return !a[name][day]
}

// MarkUnavailable records that the named doctor cannot work the given day.
func (a Availability) MarkUnavailable(name string, day int) {
	if a[name] == nil {
		a[name] = make(map[int]bool)
	}
	a[name][day] = true
}
