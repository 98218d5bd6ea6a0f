package service

import (
	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/schedule"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

func toPersonInfo(u *model.User) *dto.PersonInfo {
	if u == nil {
		return nil
	}
	return &dto.PersonInfo{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func toRoomInfo(r *model.Room) *dto.RoomInfo {
	if r == nil {
		return nil
	}
	return &dto.RoomInfo{RoomID: r.RoomID, RoomName: r.RoomName, Type: r.Type}
}

func toSubjectInfo(s *model.Subject) *dto.SubjectInfo {
	if s == nil {
		return nil
	}
	return &dto.SubjectInfo{SubjectID: s.SubjectID, SubjectName: s.SubjectName}
}

func toClassInfo(c *model.Class) *dto.ClassInfo {
	if c == nil {
		return nil
	}
	return &dto.ClassInfo{ClassID: c.ClassID, Name: c.Name}
}

func toSessionResponse(s *model.Session) *dto.SessionResponse {
	dayName, _ := schedule.FormatDay(s.Day)
	return &dto.SessionResponse{
		SessionID: s.SessionID,
		Day:       dayName,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Class:     toClassInfo(s.Class),
		Room:      toRoomInfo(s.Room),
		Professor: toPersonInfo(s.Professor),
		Subject:   toSubjectInfo(s.Subject),
		CreatedAt: s.CreatedAt.UTC().Format(timestampLayout),
	}
}

func toRatrapageResponse(r *model.Ratrapage) *dto.RatrapageResponse {
	return &dto.RatrapageResponse{
		RatrapageID: r.RatrapageID,
		Date:        r.Date.Format(dateLayout),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
		Class:       toClassInfo(r.Class),
		Room:        toRoomInfo(r.Room),
		Professor:   toPersonInfo(r.Professor),
		Subject:     toSubjectInfo(r.Subject),
		CreatedAt:   r.CreatedAt.UTC().Format(timestampLayout),
	}
}

func toAbsenceResponse(a *model.Absence) dto.AbsenceResponse {
	return dto.AbsenceResponse{
		AbsenceID:  a.AbsenceID,
		SessionID:  a.SessionID,
		Date:       a.Date.Format(dateLayout),
		IsAbsent:   a.IsAbsent,
		RecordedAt: a.RecordedAt.UTC().Format(timestampLayout),
		Student:    toPersonInfo(a.Student),
	}
}
