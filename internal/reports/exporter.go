package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type attendanceLister interface {
	ListByWorkDateRange(ctx context.Context, from, to time.Time) ([]models.AttendanceRecord, error)
}

type objectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Exporter archives one calendar month of attendance as CSV in the object
// store.
type Exporter struct {
	records attendanceLister
	store   objectStore
	log     zerolog.Logger
}

func NewExporter(records attendanceLister, store objectStore, log zerolog.Logger) *Exporter {
	return &Exporter{
		records: records,
		store:   store,
		log:     log,
	}
}

func (e *Exporter) ExportMonth(ctx context.Context, year int, month time.Month) error {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	records, err := e.records.ListByWorkDateRange(ctx, from, to)
	if err != nil {
		return fmt.Errorf("list attendance: %w", err)
	}

	data, err := marshalCSV(records)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("attendance-%04d-%02d.csv", year, int(month))
	if err := e.store.Put(ctx, key, data, "text/csv"); err != nil {
		return err
	}

	e.log.Info().Str("object", key).Int("records", len(records)).Msg("attendance report exported")
	return nil
}

func marshalCSV(records []models.AttendanceRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "user_id", "work_date", "clock_in", "clock_out", "total_hours", "auto_closed"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, record := range records {
		clockOut := ""
		if record.ClockOut != nil {
			clockOut = record.ClockOut.Format(time.RFC3339)
		}
		totalHours := ""
		if record.TotalHours != nil {
			totalHours = strconv.FormatFloat(*record.TotalHours, 'f', 4, 64)
		}

		row := []string{
			record.ID,
			record.UserID,
			record.WorkDate.Format("2006-01-02"),
			record.ClockIn.Format(time.RFC3339),
			clockOut,
			totalHours,
			strconv.FormatBool(record.AutoClosed),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
