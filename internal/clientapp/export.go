package clientapp

import (
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/phillip-england/dayflow/internal/models"
)

// attendanceWorkbook lays out one row per record under a bold header row.
func attendanceWorkbook(sheet string, records []models.Attendance, withEmployee bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := []any{"Date", "Status", "Check In", "Check Out", "Work Hours"}
	if withEmployee {
		header = append([]any{"Employee ID", "Employee", "Department"}, header...)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, bold)
	}

	for i, rec := range records {
		row := []any{rec.Date, rec.Status.String(), optional(rec.CheckIn), optional(rec.CheckOut), ""}
		if rec.WorkHours != nil {
			row[4] = *rec.WorkHours
		}
		if withEmployee {
			row = append([]any{rec.EmployeeID, rec.EmployeeName, rec.Department}, row...)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func (s *server) writeAttendanceWorkbook(w http.ResponseWriter, r *http.Request, sheet, filename string, records []models.Attendance, withEmployee bool) {
	f, err := attendanceWorkbook(sheet, records, withEmployee)
	if err != nil {
		s.logger.Error("build workbook failed", "err", err)
		http.Error(w, "unable to build export", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write workbook failed", "err", err)
		http.Error(w, "unable to build export", http.StatusInternalServerError)
		return
	}
	if s.gone(r) {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	w.Header().Set("Cache-Control", "private, no-store")
	_, _ = w.Write(buf.Bytes())
}
