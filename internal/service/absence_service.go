package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
	"scholaria/backend/internal/schedule"
)

// ── attendance business errors ──

var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrStudentNotInClass = errors.New("student is not enrolled in the session's class")
	ErrDateNotOnWeekday  = errors.New("date does not fall on the session's weekday")
	ErrIncompleteRoster  = errors.New("roll call must cover the full class roster")
	ErrUnknownStudent    = errors.New("roll call contains a student outside the class")
	ErrDuplicateEntry    = errors.New("roll call lists the same student twice")
	ErrNotSessionTeacher = errors.New("session is taught by another professor")
)

// AbsenceService records attendance. Records are keyed by
// (session, date, student); re-recording overwrites, the latest wins.
type AbsenceService interface {
	Assign(ctx context.Context, professorID string, req *dto.AssignAbsenceRequest) (*dto.AbsenceResponse, error)
	// SubmitRollCall records the whole roster of one occurrence at once.
	// The entries must cover every enrolled student exactly once.
	SubmitRollCall(ctx context.Context, professorID string, req *dto.RollCallRequest) (*dto.SessionAttendanceResponse, error)
	SessionSummary(ctx context.Context, sessionID, date string) (*dto.SessionAttendanceResponse, error)
	StudentHistory(ctx context.Context, studentID, sessionID string) ([]dto.StudentHistoryEntry, error)
	StudentStatus(ctx context.Context, studentID, sessionID string) (*dto.StudentStatusResponse, error)
}

// Attendance standing values for StudentStatus.
const (
	StatusNotRecorded = "not_recorded"
	StatusRecorded    = "recorded"
)

type absenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAbsenceService(repo *repository.Repository, logger *zap.Logger) AbsenceService {
	return &absenceService{repo: repo, logger: logger}
}

func (s *absenceService) Assign(ctx context.Context, professorID string, req *dto.AssignAbsenceRequest) (*dto.AbsenceResponse, error) {
	session, date, err := s.resolveOccurrence(ctx, professorID, req.SessionID, req.Date)
	if err != nil {
		return nil, err
	}

	student, err := s.repo.User.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	if student.Role != model.RoleStudent || student.ClassID == nil || *student.ClassID != session.ClassID {
		return nil, ErrStudentNotInClass
	}

	absence := &model.Absence{
		UserID:    req.StudentID,
		ClassID:   session.ClassID,
		SessionID: req.SessionID,
		Date:      date,
		IsAbsent:  req.IsAbsent,
	}
	if err := s.repo.Absence.Upsert(ctx, absence); err != nil {
		s.logger.Error("upsert absence failed", zap.Error(err))
		return nil, err
	}

	resp := toAbsenceResponse(absence)
	resp.Student = toPersonInfo(student)
	return &resp, nil
}

func (s *absenceService) SubmitRollCall(ctx context.Context, professorID string, req *dto.RollCallRequest) (*dto.SessionAttendanceResponse, error) {
	session, date, err := s.resolveOccurrence(ctx, professorID, req.SessionID, req.Date)
	if err != nil {
		return nil, err
	}

	roster, err := s.repo.User.ListStudentsByClass(ctx, session.ClassID)
	if err != nil {
		s.logger.Error("load class roster failed", zap.Error(err))
		return nil, err
	}

	// The submission must be a bijection onto the roster: every enrolled
	// student exactly once, nobody from outside.
	enrolled := make(map[string]bool, len(roster))
	for i := range roster {
		enrolled[roster[i].UserID] = true
	}
	seen := make(map[string]bool, len(req.Entries))
	for _, e := range req.Entries {
		if !enrolled[e.StudentID] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, e.StudentID)
		}
		if seen[e.StudentID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, e.StudentID)
		}
		seen[e.StudentID] = true
	}
	if len(seen) != len(roster) {
		return nil, ErrIncompleteRoster
	}

	absences := make([]model.Absence, 0, len(req.Entries))
	for _, e := range req.Entries {
		absences = append(absences, model.Absence{
			UserID:    e.StudentID,
			ClassID:   session.ClassID,
			SessionID: req.SessionID,
			Date:      date,
			IsAbsent:  e.IsAbsent,
		})
	}
	if err := s.repo.Absence.UpsertBatch(ctx, absences); err != nil {
		s.logger.Error("roll call upsert failed", zap.Error(err))
		return nil, err
	}

	return s.SessionSummary(ctx, req.SessionID, req.Date)
}

func (s *absenceService) SessionSummary(ctx context.Context, sessionID, dateStr string) (*dto.SessionAttendanceResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		return nil, notFoundOr(err, ErrSessionNotFound)
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	roster, err := s.repo.User.ListStudentsByClass(ctx, session.ClassID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.Absence.ListByOccurrence(ctx, sessionID, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionAttendanceResponse{
		SessionID:     sessionID,
		Date:          date.Format(dateLayout),
		TotalStudents: len(roster),
		Records:       make([]dto.AbsenceResponse, 0, len(records)),
	}
	for i := range records {
		if records[i].IsAbsent {
			resp.TotalAbsent++
		}
		resp.Records = append(resp.Records, toAbsenceResponse(&records[i]))
	}
	return resp, nil
}

func (s *absenceService) StudentHistory(ctx context.Context, studentID, sessionID string) ([]dto.StudentHistoryEntry, error) {
	if _, err := s.repo.User.GetByID(ctx, studentID); err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	absences, err := s.repo.Absence.ListByStudentAndSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.StudentHistoryEntry, 0, len(absences))
	for i := range absences {
		entry := dto.StudentHistoryEntry{
			AbsenceID:  absences[i].AbsenceID,
			Date:       absences[i].Date.Format(dateLayout),
			IsAbsent:   absences[i].IsAbsent,
			RecordedAt: absences[i].RecordedAt.UTC().Format(timestampLayout),
		}
		if absences[i].Session != nil && absences[i].Session.Subject != nil {
			entry.SubjectName = absences[i].Session.Subject.SubjectName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// StudentStatus reports one student's standing for a session: the latest
// record's flag, or not_recorded when no roll call has touched them yet.
func (s *absenceService) StudentStatus(ctx context.Context, studentID, sessionID string) (*dto.StudentStatusResponse, error) {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		return nil, notFoundOr(err, ErrSessionNotFound)
	}
	absences, err := s.repo.Absence.ListByStudentAndSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentStatusResponse{SessionID: sessionID, Status: StatusNotRecorded}
	if len(absences) > 0 {
		// History is ordered by recording time, most recent last.
		latest := &absences[len(absences)-1]
		resp.Status = StatusRecorded
		resp.IsAbsent = &latest.IsAbsent
		resp.Date = latest.Date.Format(dateLayout)
	}
	return resp, nil
}

// resolveOccurrence loads the session, checks the caller teaches it, and
// validates that the date lands on the session's weekday.
func (s *absenceService) resolveOccurrence(ctx context.Context, professorID, sessionID, dateStr string) (*model.Session, time.Time, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		return nil, time.Time{}, notFoundOr(err, ErrSessionNotFound)
	}
	if session.ProfessorID != professorID {
		return nil, time.Time{}, ErrNotSessionTeacher
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, time.Time{}, err
	}
	day, ok := schedule.Weekday(date)
	if !ok || day != session.Day {
		return nil, time.Time{}, ErrDateNotOnWeekday
	}
	return session, date, nil
}
