package service

import (
	"context"

	"go.uber.org/zap"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
)

// CatalogService serves the lookup lists the scheduling UI needs when
// composing a session: professors, and a department's rooms, classes and
// subjects.
type CatalogService interface {
	ListProfessors(ctx context.Context) ([]dto.PersonInfo, error)
	ListRoomsByDepartment(ctx context.Context, departmentID string) ([]dto.RoomInfo, error)
	ListClassesByDepartment(ctx context.Context, departmentID string) ([]dto.ClassInfo, error)
	ListSubjectsByDepartment(ctx context.Context, departmentID string) ([]dto.SubjectInfo, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListProfessors(ctx context.Context) ([]dto.PersonInfo, error) {
	professors, err := s.repo.User.ListByRole(ctx, model.RoleProfessor)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonInfo, 0, len(professors))
	for i := range professors {
		out = append(out, *toPersonInfo(&professors[i]))
	}
	return out, nil
}

func (s *catalogService) ListRoomsByDepartment(ctx context.Context, departmentID string) ([]dto.RoomInfo, error) {
	if _, err := s.repo.Department.GetByID(ctx, departmentID); err != nil {
		return nil, notFoundOr(err, ErrDepartmentNotFound)
	}
	rooms, err := s.repo.Room.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomInfo, 0, len(rooms))
	for i := range rooms {
		out = append(out, *toRoomInfo(&rooms[i]))
	}
	return out, nil
}

func (s *catalogService) ListClassesByDepartment(ctx context.Context, departmentID string) ([]dto.ClassInfo, error) {
	if _, err := s.repo.Department.GetByID(ctx, departmentID); err != nil {
		return nil, notFoundOr(err, ErrDepartmentNotFound)
	}
	classes, err := s.repo.Class.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClassInfo, 0, len(classes))
	for i := range classes {
		out = append(out, *toClassInfo(&classes[i]))
	}
	return out, nil
}

func (s *catalogService) ListSubjectsByDepartment(ctx context.Context, departmentID string) ([]dto.SubjectInfo, error) {
	if _, err := s.repo.Department.GetByID(ctx, departmentID); err != nil {
		return nil, notFoundOr(err, ErrDepartmentNotFound)
	}
	subjects, err := s.repo.Subject.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubjectInfo, 0, len(subjects))
	for i := range subjects {
		out = append(out, *toSubjectInfo(&subjects[i]))
	}
	return out, nil
}
