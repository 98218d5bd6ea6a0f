package model

import "time"

// Absence is one attendance record for a student at one session occurrence.
// Exactly one row exists per (session, date, student); roll call upserts so
// the latest submission wins.
type Absence struct {
	AbsenceID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_absences_occurrence,priority:3" json:"user_id"`
	ClassID    string    `gorm:"type:uuid;not null" json:"class_id"`
	SessionID  string    `gorm:"type:uuid;not null;uniqueIndex:uq_absences_occurrence,priority:1" json:"session_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_absences_occurrence,priority:2" json:"date"`
	IsAbsent   bool      `gorm:"not null;default:true" json:"is_absent"`
	RecordedAt time.Time `gorm:"autoCreateTime" json:"recorded_at"`

	Student *User    `gorm:"foreignKey:UserID" json:"student,omitempty"`
	Session *Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (Absence) TableName() string {
	return "absences"
}
