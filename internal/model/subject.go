package model

import "time"

type Subject struct {
	SubjectID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	SubjectName  string    `gorm:"size:100;not null" json:"subject_name"`
	Multiplier   int       `gorm:"not null" json:"multiplier"`
	ProfessorID  string    `gorm:"type:uuid;not null" json:"professor_id"`
	DepartmentID string    `gorm:"type:uuid;not null" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Professor  *User       `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}
