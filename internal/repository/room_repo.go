package repository

import (
	"context"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// RoomRepository is the room data access interface.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*model.Room, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Room, error)
}

type roomRepo struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("room_name").
		Find(&rooms).Error
	return rooms, err
}
