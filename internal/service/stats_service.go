package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
)

var ErrDepartmentNotFound = errors.New("department not found")

// Absence-rate bands.
const (
	BandGood     = "good"     // rate < 10
	BandWarning  = "warning"  // 10 <= rate < 20
	BandCritical = "critical" // rate >= 20
)

// StatsService aggregates attendance into per-student, per-class and
// per-department reports. Reports are recomputed on demand, never cached.
type StatsService interface {
	ClassStatistics(ctx context.Context, classID string) (*dto.ClassStatsResponse, error)
	DepartmentStatistics(ctx context.Context, departmentID string) (*dto.DepartmentStatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) ClassStatistics(ctx context.Context, classID string) (*dto.ClassStatsResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}

	roster, err := s.repo.User.ListStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.Session.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.Absence.CountByClass(ctx, classID)
	if err != nil {
		s.logger.Error("count class attendance failed", zap.Error(err))
		return nil, err
	}
	byStudent := make(map[string]repository.AttendanceCount, len(counts))
	for _, c := range counts {
		byStudent[c.UserID] = c
	}

	resp := &dto.ClassStatsResponse{
		ClassID:       classID,
		ClassName:     class.Name,
		TotalStudents: len(roster),
		TotalSessions: len(sessions),
		Subjects:      subjectLoad(sessions),
		Students:      make([]dto.StudentStats, 0, len(roster)),
	}
	for i := range roster {
		c := byStudent[roster[i].UserID] // zero counts for unrecorded students
		rate := AbsenceRate(c.TotalAbsences, c.TotalRecords)
		resp.TotalRecords += c.TotalRecords
		resp.TotalAbsences += c.TotalAbsences
		resp.Students = append(resp.Students, dto.StudentStats{
			UserID:        roster[i].UserID,
			FirstName:     roster[i].FirstName,
			LastName:      roster[i].LastName,
			TotalRecords:  c.TotalRecords,
			TotalAbsences: c.TotalAbsences,
			AbsenceRate:   rate,
			Band:          Band(rate),
		})
	}
	resp.AbsenceRate = AbsenceRate(resp.TotalAbsences, resp.TotalRecords)
	resp.Band = Band(resp.AbsenceRate)
	return resp, nil
}

func (s *statsService) DepartmentStatistics(ctx context.Context, departmentID string) (*dto.DepartmentStatsResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, departmentID)
	if err != nil {
		return nil, notFoundOr(err, ErrDepartmentNotFound)
	}
	classes, err := s.repo.Class.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DepartmentStatsResponse{
		DepartmentID: departmentID,
		DeptName:     dept.DeptName,
		Classes:      make([]dto.ClassStatsSummary, 0, len(classes)),
	}
	for i := range classes {
		counts, err := s.repo.Absence.CountByClass(ctx, classes[i].ClassID)
		if err != nil {
			s.logger.Error("count class attendance failed",
				zap.Error(err), zap.String("class_id", classes[i].ClassID))
			return nil, err
		}
		var records, absences int
		for _, c := range counts {
			records += c.TotalRecords
			absences += c.TotalAbsences
		}
		rate := AbsenceRate(absences, records)
		resp.TotalRecords += records
		resp.TotalAbsences += absences
		resp.Classes = append(resp.Classes, dto.ClassStatsSummary{
			ClassID:       classes[i].ClassID,
			ClassName:     classes[i].Name,
			TotalRecords:  records,
			TotalAbsences: absences,
			AbsenceRate:   rate,
			Band:          Band(rate),
		})
	}
	resp.AbsenceRate = AbsenceRate(resp.TotalAbsences, resp.TotalRecords)
	resp.Band = Band(resp.AbsenceRate)
	return resp, nil
}

// subjectLoad groups a class's weekly sessions per subject.
func subjectLoad(sessions []model.Session) []dto.SubjectSessionCount {
	byID := make(map[string]*dto.SubjectSessionCount)
	for i := range sessions {
		c, ok := byID[sessions[i].SubjectID]
		if !ok {
			c = &dto.SubjectSessionCount{SubjectID: sessions[i].SubjectID}
			if sessions[i].Subject != nil {
				c.SubjectName = sessions[i].Subject.SubjectName
			}
			byID[sessions[i].SubjectID] = c
		}
		c.SessionCount++
	}
	out := make([]dto.SubjectSessionCount, 0, len(byID))
	for _, c := range byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubjectName != out[j].SubjectName {
			return out[i].SubjectName < out[j].SubjectName
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// AbsenceRate is absences over records as a percentage, rounded to two
// decimals. Zero records yields zero, not a division error.
func AbsenceRate(absences, records int) float64 {
	if records == 0 {
		return 0
	}
	return math.Round(float64(absences)/float64(records)*100*100) / 100
}

// Band classifies an absence rate.
func Band(rate float64) string {
	switch {
	case rate >= 20:
		return BandCritical
	case rate >= 10:
		return BandWarning
	default:
		return BandGood
	}
}
