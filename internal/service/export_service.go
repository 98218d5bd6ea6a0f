package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
	"scholaria/backend/internal/schedule"
)

// ── export business errors ──

var (
	ErrExportEmpty        = errors.New("class has no sessions to export")
	ErrExportGenerateFail = errors.New("generating the export file failed")
)

// ExportService renders a class timetable to downloadable formats. Exports
// are returned as buffers; the handler layer sets the HTTP headers.
//
//   - ScheduleXLSX: one sheet, time slots as rows, Monday..Saturday as
//     columns, "Subject — Professor (Room)" in the cells.
//   - ScheduleICS: an RFC 5545 calendar with one weekly recurring event per
//     session and one single event per ratrapage.
type ExportService interface {
	ScheduleXLSX(ctx context.Context, classID string) (*bytes.Buffer, string, error)
	ScheduleICS(ctx context.Context, classID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ScheduleXLSX(ctx context.Context, classID string) (*bytes.Buffer, string, error) {
	class, sessions, err := s.loadTimetable(ctx, classID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	lastCol, _ := excelize.ColumnNumberToName(1 + schedule.DayMax)
	f.SetColWidth(sheetName, "B", lastCol, 30)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Title row spanning the whole grid.
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — weekly timetable", class.Name))
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	// Header row: empty corner, then day names.
	for day := schedule.DayMin; day <= schedule.DayMax; day++ {
		dayName, _ := schedule.FormatDay(day)
		cell, _ := excelize.CoordinatesToCellName(1+day, 2)
		f.SetCellValue(sheetName, cell, dayName)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// One row per slot; sessions land at (slot row, day column).
	slots := schedule.Slots()
	for i, slot := range slots {
		cell, _ := excelize.CoordinatesToCellName(1, 3+i)
		f.SetCellValue(sheetName, cell, slot.Start+" - "+slot.End)
	}
	for i := range sessions {
		slot, err := schedule.SlotAt(sessions[i].StartTime)
		if err != nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1+sessions[i].Day, 3+slot.Index)
		f.SetCellValue(sheetName, cell, sessionCellText(&sessions[i]))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("timetable_%s.xlsx", class.Name)
	return buf, filename, nil
}

func (s *exportService) ScheduleICS(ctx context.Context, classID string) (*bytes.Buffer, string, error) {
	class, sessions, err := s.loadTimetable(ctx, classID)
	if err != nil {
		return nil, "", err
	}
	ratrapages, err := s.repo.Ratrapage.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("load class ratrapages failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//scholaria//timetable//EN")

	// Weekly sessions become recurring events anchored on their next
	// occurrence from the start of the current week.
	weekStart := startOfWeek(time.Now().UTC())
	for i := range sessions {
		anchor := weekStart.AddDate(0, 0, sessions[i].Day-1)
		start, end, err := occurrenceInterval(anchor, sessions[i].StartTime, sessions[i].EndTime)
		if err != nil {
			continue
		}
		byDay, _ := icsWeekday(sessions[i].Day)

		event := cal.AddEvent("session-" + sessions[i].SessionID + "@scholaria")
		event.SetCreatedTime(time.Now().UTC())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(sessionCellText(&sessions[i]))
		if sessions[i].Room != nil {
			event.SetLocation(sessions[i].Room.RoomName)
		}
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + byDay)
	}

	// Ratrapages are single dated events.
	for i := range ratrapages {
		start, end, err := occurrenceInterval(ratrapages[i].Date, ratrapages[i].StartTime, ratrapages[i].EndTime)
		if err != nil {
			continue
		}
		event := cal.AddEvent("ratrapage-" + ratrapages[i].RatrapageID + "@scholaria")
		event.SetCreatedTime(time.Now().UTC())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(ratrapageSummary(&ratrapages[i]))
		if ratrapages[i].Room != nil {
			event.SetLocation(ratrapages[i].Room.RoomName)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("timetable_%s.ics", class.Name)
	return buf, filename, nil
}

func (s *exportService) loadTimetable(ctx context.Context, classID string) (*model.Class, []model.Session, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrClassNotFound)
	}
	sessions, err := s.repo.Session.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("load class sessions failed", zap.Error(err))
		return nil, nil, err
	}
	if len(sessions) == 0 {
		return nil, nil, ErrExportEmpty
	}
	return class, sessions, nil
}

func sessionCellText(m *model.Session) string {
	text := "—"
	if m.Subject != nil {
		text = m.Subject.SubjectName
	}
	if m.Professor != nil {
		text += " — " + m.Professor.FullName()
	}
	if m.Room != nil {
		text += " (" + m.Room.RoomName + ")"
	}
	return text
}

func ratrapageSummary(m *model.Ratrapage) string {
	text := "Ratrapage"
	if m.Subject != nil {
		text += ": " + m.Subject.SubjectName
	}
	if m.Professor != nil {
		text += " — " + m.Professor.FullName()
	}
	return text
}

// occurrenceInterval combines a date with the slot's wall-clock bounds.
func occurrenceInterval(date time.Time, startTime, endTime string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout+" 15:04", date.Format(dateLayout)+" "+startTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout+" 15:04", date.Format(dateLayout)+" "+endTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// startOfWeek returns the Monday of t's week at midnight.
func startOfWeek(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	offset := int(t.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday rolls back to the previous Monday
	}
	return day.AddDate(0, 0, -offset)
}

func icsWeekday(day int) (string, error) {
	names := map[int]string{1: "MO", 2: "TU", 3: "WE", 4: "TH", 5: "FR", 6: "SA"}
	byDay, ok := names[day]
	if !ok {
		return "", schedule.ErrInvalidDay
	}
	return byDay, nil
}
