package dto

// StudentStats is one student's aggregate within a class report.
type StudentStats struct {
	UserID        string  `json:"user_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	TotalRecords  int     `json:"total_records"`
	TotalAbsences int     `json:"total_absences"`
	AbsenceRate   float64 `json:"absence_rate"`
	Band          string  `json:"band"`
}

// SubjectSessionCount is one subject's share of a class timetable.
type SubjectSessionCount struct {
	SubjectID    string `json:"subject_id"`
	SubjectName  string `json:"subject_name"`
	SessionCount int    `json:"session_count"`
}

// ClassStatsResponse is the attendance report for one class.
type ClassStatsResponse struct {
	ClassID       string                `json:"class_id"`
	ClassName     string                `json:"class_name"`
	TotalStudents int                   `json:"total_students"`
	TotalSessions int                   `json:"total_sessions"`
	TotalRecords  int                   `json:"total_records"`
	TotalAbsences int                   `json:"total_absences"`
	AbsenceRate   float64               `json:"absence_rate"`
	Band          string                `json:"band"`
	Subjects      []SubjectSessionCount `json:"subjects"`
	Students      []StudentStats        `json:"students"`
}

// ClassStatsSummary is one class's aggregate within a department report.
type ClassStatsSummary struct {
	ClassID       string  `json:"class_id"`
	ClassName     string  `json:"class_name"`
	TotalRecords  int     `json:"total_records"`
	TotalAbsences int     `json:"total_absences"`
	AbsenceRate   float64 `json:"absence_rate"`
	Band          string  `json:"band"`
}

// DepartmentStatsResponse rolls the class reports up to one department.
type DepartmentStatsResponse struct {
	DepartmentID  string              `json:"department_id"`
	DeptName      string              `json:"dept_name"`
	TotalRecords  int                 `json:"total_records"`
	TotalAbsences int                 `json:"total_absences"`
	AbsenceRate   float64             `json:"absence_rate"`
	Band          string              `json:"band"`
	Classes       []ClassStatsSummary `json:"classes"`
}
