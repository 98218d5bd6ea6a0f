package model

import "time"

// Department groups classes, rooms and subjects under one academic unit.
type Department struct {
	DepartmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	DeptName     string    `gorm:"size:50;not null" json:"dept_name"`
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
