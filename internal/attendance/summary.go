package attendance

import (
	"time"

	"github.com/phillip-england/dayflow/internal/models"
)

type Summary struct {
	Days       int
	Present    int
	Absent     int
	HalfDays   int
	Leaves     int
	TotalHours float64
}

func Summarize(records []models.Attendance) Summary {
	var s Summary
	for _, rec := range records {
		s.Days++
		switch rec.Status {
		case models.DayPresent:
			s.Present++
		case models.DayAbsent:
			s.Absent++
		case models.DayHalf:
			s.HalfDays++
		case models.DayLeave:
			s.Leaves++
		}
		if rec.WorkHours != nil {
			s.TotalHours += *rec.WorkHours
		}
	}
	return s
}

// NeedsReview keeps only the rows HR can approve or reject.
func NeedsReview(records []models.Attendance) []models.Attendance {
	out := make([]models.Attendance, 0, len(records))
	for _, rec := range records {
		if rec.Status == models.DayLeave {
			out = append(out, rec)
		}
	}
	return out
}

// Week keeps the records dated in the Monday-to-Sunday week containing now.
// Rows with an unparseable date are dropped.
func Week(records []models.Attendance, now time.Time) []models.Attendance {
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	out := make([]models.Attendance, 0, len(records))
	for _, rec := range records {
		day, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			continue
		}
		if !day.Before(start) && day.Before(end) {
			out = append(out, rec)
		}
	}
	return out
}
