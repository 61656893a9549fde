package clientapp

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayName builds the "First Last" header name, falling back to "User".
func displayName(first, last string) string {
	name := strings.Join(strings.Fields(strings.TrimSpace(first+" "+last)), " ")
	if name == "" {
		return "User"
	}
	return titleCaser.String(name)
}

func formatDateDisplay(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	// Spreadsheet-originated dates sometimes reach the backend as serials.
	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return parsed.Format("Jan 2, 2006")
			}
		}
		return trimmed
	}
	layouts := []string{
		"2006-01-02",
		"01/02/2006",
		"2006/01/02",
		time.RFC1123,
		time.RFC1123Z,
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("Jan 2, 2006")
		}
	}
	return trimmed
}

func formatPunchClockDisplay(value *string) string {
	if value == nil {
		return "--"
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "--"
	}
	layouts := []string{"15:04:05", "15:04", "15:04:05.000000", "3:04 PM"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("3:04 PM")
		}
	}
	return trimmed
}

func formatHours(hours *float64) string {
	if hours == nil {
		return "--"
	}
	return strconv.FormatFloat(*hours, 'f', 2, 64)
}

func todayISO(now time.Time) string {
	return now.Format("2006-01-02")
}

// validDateParam accepts YYYY-MM-DD and reports whether it parsed.
func validDateParam(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", false
	}
	return trimmed, true
}
