package roster

import "github.com/adiramot/cathlab-rota/pkg/core/calendar"

// Row is one day of the finished schedule. Empty strings mark duties with no
// assignment that day.
type Row struct {
	Day           int
	SessionType   string
	FirstDoctor   string
	SecondDoctor  string
	StandbyDoctor string
	Clinic        string
}

// Schedule is the finished month, one row per day in ascending order.
type Schedule struct {
	Rows []Row
}

// BuildSchedule merges the three assignment sets into the day-by-day table.
// It is a pure merge: no assignment decisions are made here.
func BuildSchedule(month *calendar.Month, sessions map[int]Session, standby, clinic map[int]string) *Schedule {
	rows := make([]Row, 0, month.Days())
	for day := 1; day <= month.Days(); day++ {
		row := Row{Day: day}
		if session, ok := sessions[day]; ok {
			row.SessionType = string(session.Type)
			row.FirstDoctor = session.First
			row.SecondDoctor = session.Second
		}
		row.StandbyDoctor = standby[day]
		row.Clinic = clinic[day]
		rows = append(rows, row)
	}
	return &Schedule{Rows: rows}
}
