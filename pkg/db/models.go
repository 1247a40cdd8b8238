package db

// Schedule represents a database schedule record
type Schedule struct {
	ID          string
	Month       string
	Seed        int64
	GeneratedAt string
}

// Assignment represents a database assignment record, one row per day of
// the schedule's month. Empty duty fields mean the day had no such duty.
type Assignment struct {
	ID            string
	ScheduleID    string
	Day           int
	SessionType   string
	FirstDoctor   string
	SecondDoctor  string
	StandbyDoctor string
	Clinic        string
}
