package model

import "time"

// User roles.
const (
	RoleStudent        = "student"
	RoleProfessor      = "professor"
	RoleAdministrative = "administrative"
	RoleDirector       = "director"
)

type User struct {
	UserID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FirstName string    `gorm:"size:50;not null" json:"first_name"`
	LastName  string    `gorm:"size:50;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	ClassID   *string   `gorm:"type:uuid" json:"class_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
