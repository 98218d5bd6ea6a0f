package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
)

// ── revocation business errors ──

var (
	ErrDemandeNotFound  = errors.New("demande not found")
	ErrAbsenceNotFound  = errors.New("absence not found")
	ErrNotAbsenceOwner  = errors.New("absence belongs to another student")
	ErrNotMarkedAbsent  = errors.New("absence record is not marked absent")
	ErrDuplicatePending = errors.New("a pending demande already exists for this absence")
	ErrDemandeDecided   = errors.New("demande has already been decided")
	ErrInvalidStatus    = errors.New("status must be pending, approved or rejected")
)

// DemandeService runs the absence revocation workflow: a student opens a
// request against one of their absence records; an administrator approves
// (clearing the absence) or rejects it. Decisions are terminal.
type DemandeService interface {
	Open(ctx context.Context, studentID string, req *dto.DemandAbsenceRequest) (*dto.DemandeResponse, error)
	// List returns demandes of one status, oldest first. An empty status
	// means pending, the reviewer's default worklist.
	List(ctx context.Context, status string) ([]dto.DemandeResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.DemandeResponse, error)
	Approve(ctx context.Context, demandeID string) (*dto.DemandeResponse, error)
	Reject(ctx context.Context, demandeID string) (*dto.DemandeResponse, error)
}

type demandeService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewDemandeService(repo *repository.Repository, logger *zap.Logger) DemandeService {
	return &demandeService{repo: repo, logger: logger, now: time.Now}
}

func (s *demandeService) Open(ctx context.Context, studentID string, req *dto.DemandAbsenceRequest) (*dto.DemandeResponse, error) {
	absence, err := s.repo.Absence.GetByID(ctx, req.AbsenceID)
	if err != nil {
		return nil, notFoundOr(err, ErrAbsenceNotFound)
	}
	if absence.UserID != studentID {
		return nil, ErrNotAbsenceOwner
	}
	// Only a standing absence can be contested.
	if !absence.IsAbsent {
		return nil, ErrNotMarkedAbsent
	}

	demande := &model.Demande{
		AbsenceID: req.AbsenceID,
		StudentID: studentID,
		Reason:    req.Reason,
		Document:  req.Document,
		Status:    model.DemandeStatusPending,
	}
	if err := s.repo.Demande.Create(ctx, demande); err != nil {
		// The partial unique index allows one pending demande per absence;
		// a second submission loses here no matter how close the race.
		if _, ok := repository.IsUniqueViolation(err); ok {
			return nil, ErrDuplicatePending
		}
		s.logger.Error("create demande failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Demande.GetByID(ctx, demande.DemandeID)
	if err != nil {
		s.logger.Error("reload created demande failed", zap.Error(err))
		return nil, err
	}
	return toDemandeResponse(created), nil
}

func (s *demandeService) List(ctx context.Context, status string) ([]dto.DemandeResponse, error) {
	if status == "" {
		status = model.DemandeStatusPending
	}
	switch status {
	case model.DemandeStatusPending, model.DemandeStatusApproved, model.DemandeStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}
	demandes, err := s.repo.Demande.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toDemandeResponses(demandes), nil
}

func (s *demandeService) ListByStudent(ctx context.Context, studentID string) ([]dto.DemandeResponse, error) {
	demandes, err := s.repo.Demande.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toDemandeResponses(demandes), nil
}

func (s *demandeService) Approve(ctx context.Context, demandeID string) (*dto.DemandeResponse, error) {
	return s.decide(ctx, demandeID, model.DemandeStatusApproved)
}

func (s *demandeService) Reject(ctx context.Context, demandeID string) (*dto.DemandeResponse, error) {
	return s.decide(ctx, demandeID, model.DemandeStatusRejected)
}

func (s *demandeService) decide(ctx context.Context, demandeID, status string) (*dto.DemandeResponse, error) {
	demande, err := s.repo.Demande.GetByID(ctx, demandeID)
	if err != nil {
		return nil, notFoundOr(err, ErrDemandeNotFound)
	}
	if demande.Status != model.DemandeStatusPending {
		return nil, ErrDemandeDecided
	}

	// Decide flips the demande and, on approval, the absence in one
	// transaction. A concurrent decision loses on the pending guard.
	if err := s.repo.Demande.Decide(ctx, demandeID, status, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDemandeDecided
		}
		s.logger.Error("decide demande failed", zap.Error(err), zap.String("status", status))
		return nil, err
	}

	decided, err := s.repo.Demande.GetByID(ctx, demandeID)
	if err != nil {
		s.logger.Error("reload decided demande failed", zap.Error(err))
		return nil, err
	}
	return toDemandeResponse(decided), nil
}

func toDemandeResponse(d *model.Demande) *dto.DemandeResponse {
	resp := &dto.DemandeResponse{
		DemandeID: d.DemandeID,
		Status:    d.Status,
		Reason:    d.Reason,
		Document:  d.Document,
		Student:   toPersonInfo(d.Student),
		CreatedAt: d.CreatedAt.UTC().Format(timestampLayout),
	}
	if d.Absence != nil {
		absence := toAbsenceResponse(d.Absence)
		resp.Absence = &absence
	}
	if d.DecidedAt != nil {
		decidedAt := d.DecidedAt.UTC().Format(timestampLayout)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func toDemandeResponses(demandes []model.Demande) []dto.DemandeResponse {
	out := make([]dto.DemandeResponse, 0, len(demandes))
	for i := range demandes {
		out = append(out, *toDemandeResponse(&demandes[i]))
	}
	return out
}
