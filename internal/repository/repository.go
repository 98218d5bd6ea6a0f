// Package repository is the data access layer. Each entity exposes an
// interface backed by a GORM implementation; Repository aggregates them for
// injection into the service layer.
package repository

import "gorm.io/gorm"

// Repository bundles every repository behind one injection point.
type Repository struct {
	User       UserRepository
	Class      ClassRepository
	Room       RoomRepository
	Subject    SubjectRepository
	Department DepartmentRepository
	Session    SessionRepository
	Ratrapage  RatrapageRepository
	Absence    AbsenceRepository
	Demande    DemandeRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Class:      NewClassRepo(db),
		Room:       NewRoomRepo(db),
		Subject:    NewSubjectRepo(db),
		Department: NewDepartmentRepo(db),
		Session:    NewSessionRepo(db),
		Ratrapage:  NewRatrapageRepo(db),
		Absence:    NewAbsenceRepo(db),
		Demande:    NewDemandeRepo(db),
	}
}
