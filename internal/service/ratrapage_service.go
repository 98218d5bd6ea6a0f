package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
	"scholaria/backend/internal/schedule"
)

// ── ratrapage business errors ──

var (
	ErrRatrapageNotFound  = errors.New("ratrapage not found")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
	ErrSundayDate         = errors.New("nothing can be scheduled on a Sunday")
	ErrNotRatrapageOwner  = errors.New("ratrapage belongs to another professor")
	ErrDepartmentMismatch = errors.New("department does not match the class")
)

// RatrapageService manages date-anchored makeup sessions. A ratrapage
// competes for resources against both other ratrapages on the same date and
// the weekly sessions on that date's weekday.
type RatrapageService interface {
	Add(ctx context.Context, professorID string, req *dto.AddRatrapageRequest) (*dto.RatrapageResponse, error)
	Update(ctx context.Context, ratrapageID, professorID string, req *dto.UpdateRatrapageRequest) (*dto.RatrapageResponse, error)
	Delete(ctx context.Context, ratrapageID, professorID string) error
	ListByClass(ctx context.Context, classID string) ([]dto.RatrapageResponse, error)
	ListByProfessor(ctx context.Context, professorID string) ([]dto.RatrapageResponse, error)
}

type ratrapageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewRatrapageService(repo *repository.Repository, logger *zap.Logger) RatrapageService {
	return &ratrapageService{repo: repo, logger: logger}
}

func (s *ratrapageService) Add(ctx context.Context, professorID string, req *dto.AddRatrapageRequest) (*dto.RatrapageResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	slot, err := schedule.SlotAt(req.StartTime)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	// The owner and department are derived server-side; a body naming
	// someone else's is rejected rather than silently overridden.
	if req.UserID != "" && req.UserID != professorID {
		return nil, ErrNotRatrapageOwner
	}

	class, err := s.repo.Class.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	if req.DepartmentID != "" && req.DepartmentID != class.DepartmentID {
		return nil, ErrDepartmentMismatch
	}
	if _, err := s.repo.Room.GetByID(ctx, req.RoomID); err != nil {
		return nil, notFoundOr(err, ErrRoomNotFound)
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	if subject.ProfessorID != professorID {
		return nil, ErrInvalidAssignment
	}

	candidate := schedule.Booking{
		RoomID:      req.RoomID,
		ProfessorID: professorID,
		ClassID:     req.ClassID,
		Occurrence:  schedule.Dated(date),
		StartTime:   slot.Start,
	}
	if err := s.checkSlot(ctx, candidate, ""); err != nil {
		return nil, err
	}

	rat := &model.Ratrapage{
		UserID:       professorID,
		ClassID:      req.ClassID,
		RoomID:       req.RoomID,
		DepartmentID: class.DepartmentID,
		SubjectID:    req.SubjectID,
		Date:         date,
		StartTime:    slot.Start,
		EndTime:      slot.End,
		Description:  req.Description,
	}
	if err := s.repo.Ratrapage.Create(ctx, rat); err != nil {
		if constraint, ok := repository.IsUniqueViolation(err); ok {
			return nil, uniqueViolationError(constraint)
		}
		s.logger.Error("create ratrapage failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Ratrapage.GetByID(ctx, rat.RatrapageID)
	if err != nil {
		s.logger.Error("reload created ratrapage failed", zap.Error(err))
		return nil, err
	}
	return toRatrapageResponse(created), nil
}

func (s *ratrapageService) Update(ctx context.Context, ratrapageID, professorID string, req *dto.UpdateRatrapageRequest) (*dto.RatrapageResponse, error) {
	rat, err := s.repo.Ratrapage.GetByID(ctx, ratrapageID)
	if err != nil {
		return nil, notFoundOr(err, ErrRatrapageNotFound)
	}
	if rat.UserID != professorID {
		return nil, ErrNotRatrapageOwner
	}

	if req.RoomID != nil {
		if _, err := s.repo.Room.GetByID(ctx, *req.RoomID); err != nil {
			return nil, notFoundOr(err, ErrRoomNotFound)
		}
		rat.RoomID = *req.RoomID
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		rat.Date = date
	}
	if req.StartTime != nil {
		slot, err := schedule.SlotAt(*req.StartTime)
		if err != nil {
			return nil, ErrInvalidSlot
		}
		rat.StartTime = slot.Start
		rat.EndTime = slot.End
	}
	if req.Description != nil {
		rat.Description = req.Description
	}

	candidate := schedule.Booking{
		RoomID:      rat.RoomID,
		ProfessorID: rat.UserID,
		ClassID:     rat.ClassID,
		Occurrence:  schedule.Dated(rat.Date),
		StartTime:   rat.StartTime,
	}
	// The moved ratrapage must not conflict with anything but itself.
	if err := s.checkSlot(ctx, candidate, rat.RatrapageID); err != nil {
		return nil, err
	}

	// Save only persists scalar columns; detach preloaded rows first.
	rat.Class, rat.Room, rat.Professor, rat.Subject = nil, nil, nil, nil
	if err := s.repo.Ratrapage.Update(ctx, rat); err != nil {
		if constraint, ok := repository.IsUniqueViolation(err); ok {
			return nil, uniqueViolationError(constraint)
		}
		s.logger.Error("update ratrapage failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Ratrapage.GetByID(ctx, ratrapageID)
	if err != nil {
		s.logger.Error("reload updated ratrapage failed", zap.Error(err))
		return nil, err
	}
	return toRatrapageResponse(updated), nil
}

func (s *ratrapageService) Delete(ctx context.Context, ratrapageID, professorID string) error {
	rat, err := s.repo.Ratrapage.GetByID(ctx, ratrapageID)
	if err != nil {
		return notFoundOr(err, ErrRatrapageNotFound)
	}
	if rat.UserID != professorID {
		return ErrNotRatrapageOwner
	}
	affected, err := s.repo.Ratrapage.Delete(ctx, ratrapageID)
	if err != nil {
		s.logger.Error("delete ratrapage failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrRatrapageNotFound
	}
	return nil
}

func (s *ratrapageService) ListByClass(ctx context.Context, classID string) ([]dto.RatrapageResponse, error) {
	rats, err := s.repo.Ratrapage.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return toRatrapageResponses(rats), nil
}

func (s *ratrapageService) ListByProfessor(ctx context.Context, professorID string) ([]dto.RatrapageResponse, error) {
	rats, err := s.repo.Ratrapage.ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}
	return toRatrapageResponses(rats), nil
}

// checkSlot runs the conflict pre-check for a dated candidate against the
// weekly sessions on its weekday and the other ratrapages on its date.
// excludeID skips the candidate's own row when rescheduling.
func (s *ratrapageService) checkSlot(ctx context.Context, candidate schedule.Booking, excludeID string) error {
	day, ok := candidate.Occurrence.EffectiveWeekday()
	if !ok {
		return ErrSundayDate
	}

	sessions, err := s.repo.Session.ListBySlot(ctx, day, candidate.StartTime)
	if err != nil {
		s.logger.Error("load slot sessions failed", zap.Error(err))
		return err
	}
	rats, err := s.repo.Ratrapage.ListBySlot(ctx, candidate.Occurrence.Date(), candidate.StartTime)
	if err != nil {
		s.logger.Error("load slot ratrapages failed", zap.Error(err))
		return err
	}

	existing := make([]schedule.Booking, 0, len(sessions)+len(rats))
	for i := range sessions {
		existing = append(existing, sessionBooking(&sessions[i]))
	}
	for i := range rats {
		if rats[i].RatrapageID == excludeID {
			continue
		}
		existing = append(existing, ratrapageBooking(&rats[i]))
	}
	if c := schedule.CheckConflict(candidate, existing); c != nil {
		return conflictError(c.Resource)
	}
	return nil
}

func ratrapageBooking(m *model.Ratrapage) schedule.Booking {
	return schedule.Booking{
		RoomID:      m.RoomID,
		ProfessorID: m.UserID,
		ClassID:     m.ClassID,
		Occurrence:  schedule.Dated(m.Date),
		StartTime:   m.StartTime,
	}
}

func toRatrapageResponses(rats []model.Ratrapage) []dto.RatrapageResponse {
	out := make([]dto.RatrapageResponse, 0, len(rats))
	for i := range rats {
		out = append(out, *toRatrapageResponse(&rats[i]))
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}
