package model

import "time"

// Session is one weekly recurring class meeting. Day runs 1 (Monday) through
// 6 (Saturday); start and end are "HH:MM" wall-clock strings aligned to the
// fixed 90-minute slot grid.
//
// The three composite unique indexes (room/professor/class × day × start)
// are the authoritative guard against double booking.
type Session struct {
	SessionID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	ClassID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_class_slot,priority:1" json:"class_id"`
	RoomID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_room_slot,priority:1" json:"room_id"`
	ProfessorID string    `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_professor_slot,priority:1" json:"professor_id"`
	SubjectID   string    `gorm:"type:uuid;not null" json:"subject_id"`
	Day         int       `gorm:"not null;uniqueIndex:uq_sessions_room_slot,priority:2;uniqueIndex:uq_sessions_professor_slot,priority:2;uniqueIndex:uq_sessions_class_slot,priority:2" json:"day"`
	StartTime   string    `gorm:"size:5;not null;uniqueIndex:uq_sessions_room_slot,priority:3;uniqueIndex:uq_sessions_professor_slot,priority:3;uniqueIndex:uq_sessions_class_slot,priority:3" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Class     *Class   `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Room      *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Professor *User    `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
	Subject   *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}
