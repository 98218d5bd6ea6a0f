package dto

// AssignAbsenceRequest marks one student absent or present at one session
// occurrence. Date is "2006-01-02" and must land on the session's weekday.
type AssignAbsenceRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	IsAbsent  bool   `json:"is_absent"`
}

// RollCallEntry is one student's status in a full-roster submission.
type RollCallEntry struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	IsAbsent  bool   `json:"is_absent"`
}

// RollCallRequest records attendance for a whole class roster at once. The
// entries must cover every enrolled student exactly once.
type RollCallRequest struct {
	SessionID string          `json:"session_id" binding:"required,uuid"`
	Date      string          `json:"date" binding:"required"`
	Entries   []RollCallEntry `json:"entries" binding:"required,min=1,dive"`
}

type AbsenceResponse struct {
	AbsenceID  string      `json:"absence_id"`
	SessionID  string      `json:"session_id"`
	Date       string      `json:"date"`
	IsAbsent   bool        `json:"is_absent"`
	RecordedAt string      `json:"recorded_at"`
	Student    *PersonInfo `json:"student,omitempty"`
}

// SessionAttendanceResponse summarizes one occurrence of a session.
type SessionAttendanceResponse struct {
	SessionID     string            `json:"session_id"`
	Date          string            `json:"date"`
	TotalStudents int               `json:"total_students"`
	TotalAbsent   int               `json:"total_absent"`
	Records       []AbsenceResponse `json:"records"`
}

// StudentHistoryEntry is one row of a student's absence history for a
// session, joined with the subject for display.
type StudentHistoryEntry struct {
	AbsenceID   string `json:"absence_id"`
	Date        string `json:"date"`
	IsAbsent    bool   `json:"is_absent"`
	SubjectName string `json:"subject_name"`
	RecordedAt  string `json:"recorded_at"`
}

// StudentStatusResponse tells a student where they stand for one session:
// "not_recorded" until the first roll call touches them, then "recorded"
// with the latest occurrence's flag.
type StudentStatusResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	IsAbsent  *bool  `json:"is_absent,omitempty"`
	Date      string `json:"date,omitempty"`
}
