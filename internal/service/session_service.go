package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
	"scholaria/backend/internal/schedule"
)

// ── scheduling business errors ──

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrClassNotFound     = errors.New("class not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrProfessorNotFound = errors.New("professor not found")
	ErrSubjectNotFound   = errors.New("subject not found")

	ErrInvalidDay        = errors.New("day must be between Monday and Saturday")
	ErrInvalidSlot       = errors.New("start time is not a valid slot on the grid")
	ErrInvalidAssignment = errors.New("subject is not taught by this professor")

	ErrRoomOccupied  = errors.New("room is already booked at this slot")
	ErrProfessorBusy = errors.New("professor is already booked at this slot")
	ErrClassBusy     = errors.New("class is already booked at this slot")
)

// conflictError maps a conflict resource to its sentinel.
func conflictError(res schedule.Resource) error {
	switch res {
	case schedule.ResourceRoom:
		return ErrRoomOccupied
	case schedule.ResourceProfessor:
		return ErrProfessorBusy
	default:
		return ErrClassBusy
	}
}

// uniqueViolationError maps a lost insert race to the same sentinels the
// pre-check produces, keyed on which unique index rejected the row.
func uniqueViolationError(constraint string) error {
	switch {
	case strings.Contains(constraint, "room"):
		return ErrRoomOccupied
	case strings.Contains(constraint, "professor"):
		return ErrProfessorBusy
	default:
		return ErrClassBusy
	}
}

// SessionService manages the weekly timetable.
type SessionService interface {
	Add(ctx context.Context, req *dto.AddSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, sessionID string) error
	GetByID(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	ListByClass(ctx context.Context, classID string) ([]dto.SessionResponse, error)
	ListByProfessor(ctx context.Context, professorID string) ([]dto.SessionResponse, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]dto.SessionResponse, error)
	// ProjectWeek lays a class's sessions onto the day × slot grid.
	ProjectWeek(ctx context.Context, classID string) (*dto.WeekGridResponse, error)
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

func (s *sessionService) Add(ctx context.Context, req *dto.AddSessionRequest) (*dto.SessionResponse, error) {
	day, err := schedule.ParseDay(req.Day)
	if err != nil {
		return nil, ErrInvalidDay
	}
	slot, err := schedule.SlotAt(req.StartTime)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	if req.EndTime != "" && req.EndTime != slot.End {
		return nil, ErrInvalidSlot
	}

	// Referenced resources must exist before any conflict reasoning.
	if _, err := s.repo.Class.GetByID(ctx, req.ClassID); err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	if _, err := s.repo.Room.GetByID(ctx, req.RoomID); err != nil {
		return nil, notFoundOr(err, ErrRoomNotFound)
	}
	professor, err := s.repo.User.GetByID(ctx, req.ProfessorID)
	if err != nil {
		return nil, notFoundOr(err, ErrProfessorNotFound)
	}
	if professor.Role != model.RoleProfessor {
		return nil, ErrProfessorNotFound
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	if subject.ProfessorID != req.ProfessorID {
		return nil, ErrInvalidAssignment
	}

	// Conflict pre-check against everything already in the slot: weekly
	// sessions and any ratrapage landing on this weekday. The unique
	// indexes remain the authority if a concurrent insert slips past.
	candidate := schedule.Booking{
		RoomID:      req.RoomID,
		ProfessorID: req.ProfessorID,
		ClassID:     req.ClassID,
		Occurrence:  schedule.Weekly(day),
		StartTime:   slot.Start,
	}
	existing, err := s.slotBookings(ctx, day, slot.Start)
	if err != nil {
		s.logger.Error("load slot bookings failed", zap.Error(err))
		return nil, err
	}
	if c := schedule.CheckConflict(candidate, existing); c != nil {
		return nil, conflictError(c.Resource)
	}

	session := &model.Session{
		ClassID:     req.ClassID,
		RoomID:      req.RoomID,
		ProfessorID: req.ProfessorID,
		SubjectID:   req.SubjectID,
		Day:         day,
		StartTime:   slot.Start,
		EndTime:     slot.End,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		if constraint, ok := repository.IsUniqueViolation(err); ok {
			return nil, uniqueViolationError(constraint)
		}
		s.logger.Error("create session failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Session.GetByID(ctx, session.SessionID)
	if err != nil {
		s.logger.Error("reload created session failed", zap.Error(err))
		return nil, err
	}
	return toSessionResponse(created), nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	affected, err := s.repo.Session.Delete(ctx, sessionID)
	if err != nil {
		s.logger.Error("delete session failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *sessionService) GetByID(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		return nil, notFoundOr(err, ErrSessionNotFound)
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) ListByClass(ctx context.Context, classID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return toSessionResponses(sessions), nil
}

func (s *sessionService) ListByProfessor(ctx context.Context, professorID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}
	return toSessionResponses(sessions), nil
}

func (s *sessionService) ListByDepartment(ctx context.Context, departmentID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return toSessionResponses(sessions), nil
}

func (s *sessionService) ProjectWeek(ctx context.Context, classID string) (*dto.WeekGridResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	sessions, err := s.repo.Session.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	slots := schedule.Slots()
	grid := &dto.WeekGridResponse{ClassID: classID}
	for _, slot := range slots {
		grid.Slots = append(grid.Slots, dto.WeekGridSlot{StartTime: slot.Start, EndTime: slot.End})
	}

	for day := schedule.DayMin; day <= schedule.DayMax; day++ {
		dayName, _ := schedule.FormatDay(day)
		grid.Days = append(grid.Days, dto.WeekGridDay{
			Day:   dayName,
			Cells: make([]*dto.SessionResponse, len(slots)),
		})
	}
	for i := range sessions {
		slot, err := schedule.SlotAt(sessions[i].StartTime)
		if err != nil {
			continue // out-of-grid row, skip from projection
		}
		grid.Days[sessions[i].Day-1].Cells[slot.Index] = toSessionResponse(&sessions[i])
	}
	return grid, nil
}

// slotBookings collects every booking occupying a weekly slot: the weekly
// sessions on (day, start) plus ratrapages whose date falls on that weekday.
func (s *sessionService) slotBookings(ctx context.Context, day int, start string) ([]schedule.Booking, error) {
	sessions, err := s.repo.Session.ListBySlot(ctx, day, start)
	if err != nil {
		return nil, err
	}
	rats, err := s.repo.Ratrapage.ListByWeekdaySlot(ctx, day, start)
	if err != nil {
		return nil, err
	}
	bookings := make([]schedule.Booking, 0, len(sessions)+len(rats))
	for i := range sessions {
		bookings = append(bookings, sessionBooking(&sessions[i]))
	}
	for i := range rats {
		bookings = append(bookings, ratrapageBooking(&rats[i]))
	}
	return bookings, nil
}

func sessionBooking(m *model.Session) schedule.Booking {
	return schedule.Booking{
		RoomID:      m.RoomID,
		ProfessorID: m.ProfessorID,
		ClassID:     m.ClassID,
		Occurrence:  schedule.Weekly(m.Day),
		StartTime:   m.StartTime,
	}
}

func toSessionResponses(sessions []model.Session) []dto.SessionResponse {
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *toSessionResponse(&sessions[i]))
	}
	return out
}

// notFoundOr converts gorm's record-not-found to a module sentinel and
// passes other errors through untouched.
func notFoundOr(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
