package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
)

type schedulingFixture struct {
	repo  *repository.Repository
	mocks *testRepos

	dept     *model.Department
	classA   *model.Class
	classB   *model.Class
	roomA    *model.Room
	roomB    *model.Room
	profA    *model.User
	profB    *model.User
	subjectA *model.Subject // taught by profA
	subjectB *model.Subject // taught by profB
}

func newSchedulingFixture() *schedulingFixture {
	repo, mocks := newTestRepos()
	f := &schedulingFixture{repo: repo, mocks: mocks}

	f.dept = mocks.departments.add(&model.Department{DeptName: "Informatique"})
	f.classA = mocks.classes.add(&model.Class{Name: "L2-A", Capacity: 30, DepartmentID: f.dept.DepartmentID})
	f.classB = mocks.classes.add(&model.Class{Name: "L2-B", Capacity: 30, DepartmentID: f.dept.DepartmentID})
	f.roomA = mocks.rooms.add(&model.Room{RoomName: "Lab 1", Type: model.RoomTypeLab, DepartmentID: f.dept.DepartmentID})
	f.roomB = mocks.rooms.add(&model.Room{RoomName: "Amphi A", Type: model.RoomTypeAmphi, DepartmentID: f.dept.DepartmentID})
	f.profA = mocks.users.add(&model.User{FirstName: "Amine", LastName: "Haddad", Email: "amine@uni.tn", Role: model.RoleProfessor})
	f.profB = mocks.users.add(&model.User{FirstName: "Rim", LastName: "Saidi", Email: "rim@uni.tn", Role: model.RoleProfessor})
	f.subjectA = mocks.subjects.add(&model.Subject{SubjectName: "Algorithmique", Multiplier: 2, ProfessorID: f.profA.UserID, DepartmentID: f.dept.DepartmentID})
	f.subjectB = mocks.subjects.add(&model.Subject{SubjectName: "Bases de données", Multiplier: 1, ProfessorID: f.profB.UserID, DepartmentID: f.dept.DepartmentID})
	return f
}

func (f *schedulingFixture) sessionService() SessionService {
	return NewSessionService(f.repo, zap.NewNop())
}

func (f *schedulingFixture) addRequest() *dto.AddSessionRequest {
	return &dto.AddSessionRequest{
		ClassID:     f.classA.ClassID,
		RoomID:      f.roomA.RoomID,
		ProfessorID: f.profA.UserID,
		SubjectID:   f.subjectA.SubjectID,
		Day:         "Monday",
		StartTime:   "08:30",
	}
}

func TestSessionService_Add(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.sessionService()

	req := f.addRequest()
	req.EndTime = "10:00" // redundant, accepted because it matches the slot
	resp, err := svc.Add(context.Background(), req)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if resp.Day != "Monday" || resp.StartTime != "08:30" || resp.EndTime != "10:00" {
		t.Errorf("unexpected slot: %s %s-%s", resp.Day, resp.StartTime, resp.EndTime)
	}
	if resp.Subject == nil || resp.Subject.SubjectName != "Algorithmique" {
		t.Errorf("expected joined subject, got %+v", resp.Subject)
	}
}

func TestSessionService_Add_InvalidInputs(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.sessionService()

	tests := []struct {
		name    string
		mutate  func(req *dto.AddSessionRequest)
		wantErr error
	}{
		{"sunday", func(r *dto.AddSessionRequest) { r.Day = "Sunday" }, ErrInvalidDay},
		{"unknown day", func(r *dto.AddSessionRequest) { r.Day = "Lundi" }, ErrInvalidDay},
		{"misaligned start", func(r *dto.AddSessionRequest) { r.StartTime = "09:00" }, ErrInvalidSlot},
		{"past grid end", func(r *dto.AddSessionRequest) { r.StartTime = "17:30" }, ErrInvalidSlot},
		{"end time off the slot", func(r *dto.AddSessionRequest) { r.EndTime = "09:30" }, ErrInvalidSlot},
		{"unknown class", func(r *dto.AddSessionRequest) { r.ClassID = "missing" }, ErrClassNotFound},
		{"unknown room", func(r *dto.AddSessionRequest) { r.RoomID = "missing" }, ErrRoomNotFound},
		{"unknown professor", func(r *dto.AddSessionRequest) { r.ProfessorID = "missing" }, ErrProfessorNotFound},
		{"unknown subject", func(r *dto.AddSessionRequest) { r.SubjectID = "missing" }, ErrSubjectNotFound},
		{"subject of other professor", func(r *dto.AddSessionRequest) { r.SubjectID = f.subjectB.SubjectID }, ErrInvalidAssignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.addRequest()
			tt.mutate(req)
			if _, err := svc.Add(context.Background(), req); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSessionService_Add_Conflicts(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.sessionService()

	if _, err := svc.Add(context.Background(), f.addRequest()); err != nil {
		t.Fatalf("seed Add failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(req *dto.AddSessionRequest)
		wantErr error
	}{
		{
			"same room",
			func(r *dto.AddSessionRequest) {
				r.ClassID = f.classB.ClassID
				r.ProfessorID = f.profB.UserID
				r.SubjectID = f.subjectB.SubjectID
			},
			ErrRoomOccupied,
		},
		{
			"same professor",
			func(r *dto.AddSessionRequest) {
				r.ClassID = f.classB.ClassID
				r.RoomID = f.roomB.RoomID
			},
			ErrProfessorBusy,
		},
		{
			"same class",
			func(r *dto.AddSessionRequest) {
				r.RoomID = f.roomB.RoomID
				r.ProfessorID = f.profB.UserID
				r.SubjectID = f.subjectB.SubjectID
			},
			ErrClassBusy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.addRequest()
			tt.mutate(req)
			if _, err := svc.Add(context.Background(), req); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// The same triple on a different slot goes through.
	req := f.addRequest()
	req.StartTime = "10:00"
	if _, err := svc.Add(context.Background(), req); err != nil {
		t.Errorf("different slot should be free, got %v", err)
	}
}

func TestSessionService_Delete(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.sessionService()

	resp, err := svc.Add(context.Background(), f.addRequest())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := svc.Delete(context.Background(), resp.SessionID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), resp.SessionID); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound on second delete, got %v", err)
	}

	// The slot is reusable after the delete.
	if _, err := svc.Add(context.Background(), f.addRequest()); err != nil {
		t.Errorf("slot should be free after delete, got %v", err)
	}
}

func TestSessionService_ProjectWeek(t *testing.T) {
	f := newSchedulingFixture()
	svc := f.sessionService()

	seed := f.addRequest()
	if _, err := svc.Add(context.Background(), seed); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second := f.addRequest()
	second.Day = "Thursday"
	second.StartTime = "14:30"
	if _, err := svc.Add(context.Background(), second); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	grid, err := svc.ProjectWeek(context.Background(), f.classA.ClassID)
	if err != nil {
		t.Fatalf("ProjectWeek failed: %v", err)
	}
	if len(grid.Days) != 6 || len(grid.Slots) != 6 {
		t.Fatalf("expected 6×6 grid, got %d days × %d slots", len(grid.Days), len(grid.Slots))
	}
	if grid.Days[0].Cells[0] == nil {
		t.Error("expected Monday 08:30 to be occupied")
	}
	if grid.Days[3].Cells[4] == nil {
		t.Error("expected Thursday 14:30 to be occupied")
	}
	var filled int
	for _, day := range grid.Days {
		for _, cell := range day.Cells {
			if cell != nil {
				filled++
			}
		}
	}
	if filled != 2 {
		t.Errorf("expected exactly 2 occupied cells, got %d", filled)
	}
}
