package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// DemandeRepository is the revocation-request data access interface.
type DemandeRepository interface {
	Create(ctx context.Context, demande *model.Demande) error
	GetByID(ctx context.Context, id string) (*model.Demande, error)
	ListByStatus(ctx context.Context, status string) ([]model.Demande, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Demande, error)
	// Decide transitions a pending request to approved or rejected; an
	// approval also clears the absence flag, atomically in one transaction.
	Decide(ctx context.Context, demandeID, status string, decidedAt time.Time) error
}

type demandeRepo struct {
	db *gorm.DB
}

func NewDemandeRepo(db *gorm.DB) DemandeRepository {
	return &demandeRepo{db: db}
}

func (r *demandeRepo) Create(ctx context.Context, demande *model.Demande) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Create(demande).Error
	})
}

func (r *demandeRepo) GetByID(ctx context.Context, id string) (*model.Demande, error) {
	var demande model.Demande
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Absence").Preload("Absence.Session").
		Where("demande_id = ?", id).
		First(&demande).Error
	if err != nil {
		return nil, err
	}
	return &demande, nil
}

func (r *demandeRepo) ListByStatus(ctx context.Context, status string) ([]model.Demande, error) {
	var demandes []model.Demande
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Absence").Preload("Absence.Session.Subject").
		Where("status = ?", status).
		Order("created_at").
		Find(&demandes).Error
	return demandes, err
}

func (r *demandeRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Demande, error) {
	var demandes []model.Demande
	err := r.db.WithContext(ctx).
		Preload("Absence").Preload("Absence.Session.Subject").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&demandes).Error
	return demandes, err
}

func (r *demandeRepo) Decide(ctx context.Context, demandeID, status string, decidedAt time.Time) error {
	return withRetry(func() error {
		return r.decide(ctx, demandeID, status, decidedAt)
	})
}

func (r *demandeRepo) decide(ctx context.Context, demandeID, status string, decidedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var demande model.Demande
		if err := tx.Where("demande_id = ?", demandeID).First(&demande).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Demande{}).
			Where("demande_id = ? AND status = ?", demandeID, model.DemandeStatusPending).
			Updates(map[string]interface{}{
				"status":     status,
				"decided_at": decidedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if status == model.DemandeStatusApproved {
			return tx.Model(&model.Absence{}).
				Where("absence_id = ?", demande.AbsenceID).
				Update("is_absent", false).Error
		}
		return nil
	})
}
