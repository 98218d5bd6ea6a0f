// Package dto holds the request and response shapes of the HTTP API.
package dto

// AddSessionRequest creates one weekly session. Day is an English day name
// (Monday..Saturday); StartTime must begin a slot on the fixed grid.
type AddSessionRequest struct {
	ClassID     string `json:"class_id" binding:"required,uuid"`
	RoomID      string `json:"room_id" binding:"required,uuid"`
	ProfessorID string `json:"professor_id" binding:"required,uuid"`
	SubjectID   string `json:"subject_id" binding:"required,uuid"`
	Day         string `json:"day" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	// EndTime is optional; the slot grid fixes it, so when present it must
	// match the slot's end.
	EndTime string `json:"end_time"`
}

// PersonInfo is the embedded professor/student shape in responses.
type PersonInfo struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

type RoomInfo struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	Type     string `json:"type"`
}

type SubjectInfo struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
}

type ClassInfo struct {
	ClassID string `json:"class_id"`
	Name    string `json:"name"`
}

// SessionResponse is one weekly session with its joined resources.
type SessionResponse struct {
	SessionID string       `json:"session_id"`
	Day       string       `json:"day"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Class     *ClassInfo   `json:"class,omitempty"`
	Room      *RoomInfo    `json:"room,omitempty"`
	Professor *PersonInfo  `json:"professor,omitempty"`
	Subject   *SubjectInfo `json:"subject,omitempty"`
	CreatedAt string       `json:"created_at"`
}

// WeekGridResponse is a class timetable projected onto the day × slot grid.
type WeekGridResponse struct {
	ClassID string         `json:"class_id"`
	Days    []WeekGridDay  `json:"days"`
	Slots   []WeekGridSlot `json:"slots"`
}

type WeekGridSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WeekGridDay struct {
	Day   string             `json:"day"`
	Cells []*SessionResponse `json:"cells"` // indexed by slot, nil when free
}
