package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// RatrapageRepository is the makeup-session data access interface.
type RatrapageRepository interface {
	Create(ctx context.Context, rat *model.Ratrapage) error
	Update(ctx context.Context, rat *model.Ratrapage) error
	Delete(ctx context.Context, id string) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Ratrapage, error)
	ListByClass(ctx context.Context, classID string) ([]model.Ratrapage, error)
	ListByProfessor(ctx context.Context, professorID string) ([]model.Ratrapage, error)
	ListBySlot(ctx context.Context, date time.Time, startTime string) ([]model.Ratrapage, error)
	ListByWeekdaySlot(ctx context.Context, day int, startTime string) ([]model.Ratrapage, error)
}

type ratrapageRepo struct {
	db *gorm.DB
}

func NewRatrapageRepo(db *gorm.DB) RatrapageRepository {
	return &ratrapageRepo{db: db}
}

func (r *ratrapageRepo) Create(ctx context.Context, rat *model.Ratrapage) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Create(rat).Error
	})
}

func (r *ratrapageRepo) Update(ctx context.Context, rat *model.Ratrapage) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Save(rat).Error
	})
}

func (r *ratrapageRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Ratrapage{}, "ratrapage_id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *ratrapageRepo) GetByID(ctx context.Context, id string) (*model.Ratrapage, error) {
	var rat model.Ratrapage
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Where("ratrapage_id = ?", id).
		First(&rat).Error
	if err != nil {
		return nil, err
	}
	return &rat, nil
}

func (r *ratrapageRepo) ListByClass(ctx context.Context, classID string) ([]model.Ratrapage, error) {
	var rats []model.Ratrapage
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Where("class_id = ?", classID).
		Order("date, start_time").
		Find(&rats).Error
	return rats, err
}

func (r *ratrapageRepo) ListByProfessor(ctx context.Context, professorID string) ([]model.Ratrapage, error) {
	var rats []model.Ratrapage
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Where("user_id = ?", professorID).
		Order("date, start_time").
		Find(&rats).Error
	return rats, err
}

// ListBySlot returns every ratrapage on the given date and start time.
// Used for conflict pre-checks.
func (r *ratrapageRepo) ListBySlot(ctx context.Context, date time.Time, startTime string) ([]model.Ratrapage, error) {
	var rats []model.Ratrapage
	err := r.db.WithContext(ctx).
		Where("date = ? AND start_time = ?", date.Format("2006-01-02"), startTime).
		Find(&rats).Error
	return rats, err
}

// ListByWeekdaySlot returns every ratrapage falling on the given weekday
// (1=Monday .. 6=Saturday) at the given start time, on any date. Used when
// a new weekly session must not collide with an already planned makeup.
func (r *ratrapageRepo) ListByWeekdaySlot(ctx context.Context, day int, startTime string) ([]model.Ratrapage, error) {
	var rats []model.Ratrapage
	err := r.db.WithContext(ctx).
		Where("EXTRACT(ISODOW FROM date) = ? AND start_time = ?", day, startTime).
		Find(&rats).Error
	return rats, err
}
