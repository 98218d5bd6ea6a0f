package model

import "time"

// Demande statuses.
const (
	DemandeStatusPending  = "pending"
	DemandeStatusApproved = "approved"
	DemandeStatusRejected = "rejected"
)

// Demande is a student's request to revoke one absence record. A partial
// unique index allows at most one pending request per absence; approved and
// rejected requests are kept for audit.
type Demande struct {
	DemandeID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"demande_id"`
	AbsenceID string     `gorm:"type:uuid;not null" json:"absence_id"`
	StudentID string     `gorm:"type:uuid;not null" json:"student_id"`
	Reason    string     `gorm:"type:text;not null" json:"reason"`
	Document  string     `gorm:"size:500;not null" json:"document"`
	Status    string     `gorm:"size:10;not null;default:pending" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	Absence *Absence `gorm:"foreignKey:AbsenceID" json:"absence,omitempty"`
	Student *User    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Demande) TableName() string {
	return "demandes"
}
