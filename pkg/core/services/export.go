package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/adiramot/cathlab-rota/pkg/core/roster"
)

// csvHeader matches the column layout the department circulates.
var csvHeader = []string{"Day", "Session Type", "First Doctor", "Second Doctor", "Standby Doctor", "Clinic"}

// WriteCSV writes the schedule as CSV, one row per day. Empty cells mean the
// day has no duty of that kind.
func WriteCSV(w io.Writer, schedule *roster.Schedule) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range schedule.Rows {
		record := []string{
			strconv.Itoa(row.Day),
			row.SessionType,
			row.FirstDoctor,
			row.SecondDoctor,
			row.StandbyDoctor,
			row.Clinic,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for day %d: %w", row.Day, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
