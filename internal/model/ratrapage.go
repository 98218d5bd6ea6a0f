package model

import "time"

// Ratrapage is a date-anchored makeup session. It competes for rooms,
// professors and classes against both other ratrapages on the same date and
// the weekly sessions falling on that date's weekday.
type Ratrapage struct {
	RatrapageID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"ratrapage_id"`
	UserID       string    `gorm:"type:uuid;not null" json:"user_id"`
	ClassID      string    `gorm:"type:uuid;not null" json:"class_id"`
	RoomID       string    `gorm:"type:uuid;not null" json:"room_id"`
	DepartmentID string    `gorm:"type:uuid;not null" json:"department_id"`
	SubjectID    string    `gorm:"type:uuid;not null" json:"subject_id"`
	Date         time.Time `gorm:"type:date;not null" json:"date"`
	StartTime    string    `gorm:"size:5;not null" json:"start_time"`
	EndTime      string    `gorm:"size:5;not null" json:"end_time"`
	Description  *string   `gorm:"size:500" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Class     *Class   `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Room      *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Professor *User    `gorm:"foreignKey:UserID" json:"professor,omitempty"`
	Subject   *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Ratrapage) TableName() string {
	return "ratrapages"
}
