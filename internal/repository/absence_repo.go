package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scholaria/backend/internal/model"
)

// AttendanceCount is one student's aggregate over their attendance records.
type AttendanceCount struct {
	UserID        string
	TotalRecords  int
	TotalAbsences int
}

// AbsenceRepository is the attendance-record data access interface.
type AbsenceRepository interface {
	Upsert(ctx context.Context, absence *model.Absence) error
	UpsertBatch(ctx context.Context, absences []model.Absence) error
	GetByID(ctx context.Context, id string) (*model.Absence, error)
	ListByOccurrence(ctx context.Context, sessionID string, date time.Time) ([]model.Absence, error)
	ListByStudentAndSession(ctx context.Context, studentID, sessionID string) ([]model.Absence, error)
	CountByClass(ctx context.Context, classID string) ([]AttendanceCount, error)
}

type absenceRepo struct {
	db *gorm.DB
}

func NewAbsenceRepo(db *gorm.DB) AbsenceRepository {
	return &absenceRepo{db: db}
}

var absenceConflictColumns = []clause.Column{
	{Name: "session_id"}, {Name: "date"}, {Name: "user_id"},
}

// Upsert inserts one attendance record or, when a record already exists for
// the same (session, date, student), overwrites its status. The latest
// submission wins.
func (r *absenceRepo) Upsert(ctx context.Context, absence *model.Absence) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: absenceConflictColumns,
				DoUpdates: clause.Assignments(map[string]interface{}{
					"is_absent":   absence.IsAbsent,
					"recorded_at": time.Now(),
				}),
			}).
			Create(absence).Error
	})
}

// UpsertBatch applies a full roll call in one statement.
func (r *absenceRepo) UpsertBatch(ctx context.Context, absences []model.Absence) error {
	if len(absences) == 0 {
		return nil
	}
	return withRetry(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: absenceConflictColumns,
				DoUpdates: clause.Assignments(map[string]interface{}{
					"is_absent":   gorm.Expr("EXCLUDED.is_absent"),
					"recorded_at": time.Now(),
				}),
			}).
			Create(&absences).Error
	})
}

func (r *absenceRepo) GetByID(ctx context.Context, id string) (*model.Absence, error) {
	var absence model.Absence
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Session").
		Where("absence_id = ?", id).
		First(&absence).Error
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

// ListByOccurrence returns every record of one session on one date.
func (r *absenceRepo) ListByOccurrence(ctx context.Context, sessionID string, date time.Time) ([]model.Absence, error) {
	var absences []model.Absence
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ? AND date = ?", sessionID, date.Format("2006-01-02")).
		Find(&absences).Error
	return absences, err
}

// ListByStudentAndSession returns one student's full history for a session,
// ordered by recording time, most recent last. A correction of an older
// occurrence therefore lands at the end, after records of later dates.
func (r *absenceRepo) ListByStudentAndSession(ctx context.Context, studentID, sessionID string) ([]model.Absence, error) {
	var absences []model.Absence
	err := r.db.WithContext(ctx).
		Preload("Session.Subject").
		Where("user_id = ? AND session_id = ?", studentID, sessionID).
		Order("recorded_at").
		Find(&absences).Error
	return absences, err
}

// CountByClass aggregates per-student totals over one class.
func (r *absenceRepo) CountByClass(ctx context.Context, classID string) ([]AttendanceCount, error) {
	var counts []AttendanceCount
	err := r.db.WithContext(ctx).
		Model(&model.Absence{}).
		Select("user_id, COUNT(*) AS total_records, COUNT(*) FILTER (WHERE is_absent) AS total_absences").
		Where("class_id = ?", classID).
		Group("user_id").
		Scan(&counts).Error
	return counts, err
}
