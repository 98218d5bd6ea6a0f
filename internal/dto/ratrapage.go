package dto

// AddRatrapageRequest creates one date-anchored makeup session. Date is
// "2006-01-02"; StartTime must begin a slot on the fixed grid.
type AddRatrapageRequest struct {
	ClassID     string  `json:"class_id" binding:"required,uuid"`
	RoomID      string  `json:"room_id" binding:"required,uuid"`
	SubjectID   string  `json:"subject_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	Description *string `json:"description"`
	// UserID and DepartmentID are optional; the server derives both, so
	// when present they must match the authenticated professor and the
	// class's department.
	UserID       string `json:"user_id" binding:"omitempty,uuid"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

// UpdateRatrapageRequest reschedules an existing makeup session. Omitted
// fields keep their current value.
type UpdateRatrapageRequest struct {
	RoomID      *string `json:"room_id" binding:"omitempty,uuid"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	Description *string `json:"description"`
}

type RatrapageResponse struct {
	RatrapageID string       `json:"ratrapage_id"`
	Date        string       `json:"date"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	Description *string      `json:"description,omitempty"`
	Class       *ClassInfo   `json:"class,omitempty"`
	Room        *RoomInfo    `json:"room,omitempty"`
	Professor   *PersonInfo  `json:"professor,omitempty"`
	Subject     *SubjectInfo `json:"subject,omitempty"`
	CreatedAt   string       `json:"created_at"`
}
