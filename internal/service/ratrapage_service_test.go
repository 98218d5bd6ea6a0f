package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"scholaria/backend/internal/dto"
)

// 2026-03-04 is a Wednesday, 2026-03-01 a Sunday.
const (
	testWednesday = "2026-03-04"
	testSunday    = "2026-03-01"
)

func (f *schedulingFixture) ratrapageService() RatrapageService {
	return NewRatrapageService(f.repo, zap.NewNop())
}

func (f *schedulingFixture) ratrapageRequest() *dto.AddRatrapageRequest {
	return &dto.AddRatrapageRequest{
		ClassID:   f.classA.ClassID,
		RoomID:    f.roomA.RoomID,
		SubjectID: f.subjectA.SubjectID,
		Date:      testWednesday,
		StartTime: "10:00",
	}
}

func TestRatrapageService_Add(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.ratrapageService()

	// Redundant owner and department fields are accepted when they match.
	req := f.ratrapageRequest()
	req.UserID = f.profA.UserID
	req.DepartmentID = f.dept.DepartmentID
	resp, err := svc.Add(context.Background(), f.profA.UserID, req)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if resp.Date != testWednesday || resp.StartTime != "10:00" || resp.EndTime != "11:30" {
		t.Errorf("unexpected occurrence: %s %s-%s", resp.Date, resp.StartTime, resp.EndTime)
	}
}

func TestRatrapageService_Add_Invalid(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.ratrapageService()

	tests := []struct {
		name    string
		caller  string
		mutate  func(req *dto.AddRatrapageRequest)
		wantErr error
	}{
		{"bad date", f.profA.UserID, func(r *dto.AddRatrapageRequest) { r.Date = "04/03/2026" }, ErrInvalidDate},
		{"sunday", f.profA.UserID, func(r *dto.AddRatrapageRequest) { r.Date = testSunday }, ErrSundayDate},
		{"misaligned", f.profA.UserID, func(r *dto.AddRatrapageRequest) { r.StartTime = "10:30" }, ErrInvalidSlot},
		{"someone else's subject", f.profB.UserID, func(r *dto.AddRatrapageRequest) {}, ErrInvalidAssignment},
		{"body names another professor", f.profA.UserID, func(r *dto.AddRatrapageRequest) { r.UserID = f.profB.UserID }, ErrNotRatrapageOwner},
		{"body names another department", f.profA.UserID, func(r *dto.AddRatrapageRequest) { r.DepartmentID = "99999999-9999-9999-9999-999999999999" }, ErrDepartmentMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.ratrapageRequest()
			tt.mutate(req)
			if _, err := svc.Add(context.Background(), tt.caller, req); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRatrapageService_Add_ConflictWithWeeklySession(t *testing.T) {
	f := newSchedulingFixture()

	// Weekly session Wednesday 10:00 in roomA.
	sessionReq := f.addRequest()
	sessionReq.Day = "Wednesday"
	sessionReq.StartTime = "10:00"
	if _, err := f.sessionService().Add(context.Background(), sessionReq); err != nil {
		t.Fatalf("seed session failed: %v", err)
	}

	svc := f.ratrapageService()

	// Same room, same weekday, same slot: blocked.
	req := f.ratrapageRequest()
	req.ClassID = f.classB.ClassID
	req.SubjectID = f.subjectB.SubjectID
	if _, err := svc.Add(context.Background(), f.profB.UserID, req); err != ErrRoomOccupied {
		t.Errorf("expected ErrRoomOccupied, got %v", err)
	}

	// Same slot in another room, but the professor teaches the weekly
	// session: blocked on the professor.
	req = f.ratrapageRequest()
	req.RoomID = f.roomB.RoomID
	req.ClassID = f.classB.ClassID
	if _, err := svc.Add(context.Background(), f.profA.UserID, req); err != ErrProfessorBusy {
		t.Errorf("expected ErrProfessorBusy, got %v", err)
	}

	// A Thursday date clears the weekly Wednesday session entirely.
	req = f.ratrapageRequest()
	req.Date = "2026-03-05"
	if _, err := svc.Add(context.Background(), f.profA.UserID, req); err != nil {
		t.Errorf("different weekday should be free, got %v", err)
	}
}

func TestRatrapageService_Add_ConflictWithRatrapage(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.ratrapageService()

	if _, err := svc.Add(context.Background(), f.profA.UserID, f.ratrapageRequest()); err != nil {
		t.Fatalf("seed Add failed: %v", err)
	}

	// Same room, same date, same slot.
	req := f.ratrapageRequest()
	req.ClassID = f.classB.ClassID
	req.SubjectID = f.subjectB.SubjectID
	if _, err := svc.Add(context.Background(), f.profB.UserID, req); err != ErrRoomOccupied {
		t.Errorf("expected ErrRoomOccupied, got %v", err)
	}

	// Same room and slot one week later: free, dated bookings only clash
	// on the exact date.
	req.Date = "2026-03-11"
	if _, err := svc.Add(context.Background(), f.profB.UserID, req); err != nil {
		t.Errorf("next week should be free, got %v", err)
	}
}

func TestRatrapageService_Update(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.ratrapageService()

	created, err := svc.Add(context.Background(), f.profA.UserID, f.ratrapageRequest())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Only the owning professor may touch it.
	newStart := "14:30"
	if _, err := svc.Update(context.Background(), created.RatrapageID, f.profB.UserID,
		&dto.UpdateRatrapageRequest{StartTime: &newStart}); err != ErrNotRatrapageOwner {
		t.Errorf("expected ErrNotRatrapageOwner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), created.RatrapageID, f.profA.UserID,
		&dto.UpdateRatrapageRequest{StartTime: &newStart})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.StartTime != "14:30" || updated.EndTime != "16:00" {
		t.Errorf("expected 14:30-16:00, got %s-%s", updated.StartTime, updated.EndTime)
	}
}

func TestRatrapageService_Update_DoesNotConflictWithItself(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.ratrapageService()

	created, err := svc.Add(context.Background(), f.profA.UserID, f.ratrapageRequest())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Re-saving with an unchanged slot must not collide with its own row.
	desc := "room change only"
	if _, err := svc.Update(context.Background(), created.RatrapageID, f.profA.UserID,
		&dto.UpdateRatrapageRequest{Description: &desc}); err != nil {
		t.Errorf("no-op reschedule should pass, got %v", err)
	}
}

func TestRatrapageService_Delete(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.ratrapageService()

	created, err := svc.Add(context.Background(), f.profA.UserID, f.ratrapageRequest())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.RatrapageID, f.profB.UserID); err != ErrNotRatrapageOwner {
		t.Errorf("expected ErrNotRatrapageOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.RatrapageID, f.profA.UserID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.RatrapageID, f.profA.UserID); err != ErrRatrapageNotFound {
		t.Errorf("expected ErrRatrapageNotFound, got %v", err)
	}
}
