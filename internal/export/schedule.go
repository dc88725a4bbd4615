package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"enrollment-console/internal/domain"
)

// Keep header order EXACT.
var scheduleHeader = []string{
	"SEMESTER",
	"COURSE_CODE",
	"DAY_OF_WEEK",
	"START_TIME",
	"END_TIME",
	"ROOM",
}

// WriteScheduleCSV writes schedules ordered by weekday, then start time.
// The input slice is not reordered.
func WriteScheduleCSV(w io.Writer, schedules []domain.Schedule) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(scheduleHeader); err != nil {
		return err
	}
	for _, s := range sorted(schedules) {
		if err := cw.Write(scheduleRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSchedulePDF renders schedules as a single A4 table.
func WriteSchedulePDF(w io.Writer, title string, schedules []domain.Schedule) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	colWidth := 190.0 / float64(len(scheduleHeader))
	pdf.SetFont("Arial", "B", 10)
	for _, h := range scheduleHeader {
		pdf.CellFormat(colWidth, 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	rows := sorted(schedules)
	if len(rows) == 0 {
		pdf.CellFormat(colWidth*float64(len(scheduleHeader)), 7, "No schedules found", "1", 1, "C", false, 0, "")
	}
	for _, s := range rows {
		for _, v := range scheduleRow(s) {
			pdf.CellFormat(colWidth, 7, tr(v), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: render pdf: %w", err)
	}
	return nil
}

func scheduleRow(s domain.Schedule) []string {
	start, end := s.Times()
	return []string{
		clean(s.Semester),
		s.CourseCode,
		s.DayOfWeek,
		start,
		end,
		clean(s.Room),
	}
}

func sorted(in []domain.Schedule) []domain.Schedule {
	out := append([]domain.Schedule(nil), in...)
	domain.SortSchedules(out)
	return out
}
