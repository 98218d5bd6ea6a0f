package model

import "time"

// Room types.
const (
	RoomTypeLab    = "lab"
	RoomTypeAmphi  = "amphi"
	RoomTypeClasse = "classe"
)

type Room struct {
	RoomID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	RoomName     string    `gorm:"size:100;not null" json:"room_name"`
	Type         string    `gorm:"size:20;not null" json:"type"`
	DepartmentID string    `gorm:"type:uuid;not null" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t string) bool {
	return t == RoomTypeLab || t == RoomTypeAmphi || t == RoomTypeClasse
}
