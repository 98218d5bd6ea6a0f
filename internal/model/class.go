package model

import "time"

type Class struct {
	ClassID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	DepartmentID string    `gorm:"type:uuid;not null" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Class) TableName() string {
	return "classes"
}
