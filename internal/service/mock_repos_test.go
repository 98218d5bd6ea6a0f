package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"scholaria/backend/internal/model"
	"scholaria/backend/internal/repository"
)

// In-memory repository doubles for service tests. IDs are assigned
// sequentially when empty, mirroring the database default.

func nextID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) add(u *model.User) *model.User {
	if u.UserID == "" {
		u.UserID = nextID("user", len(m.users)+1)
	}
	m.users[u.UserID] = u
	return u
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListStudentsByClass(_ context.Context, classID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleStudent && u.ClassID != nil && *u.ClassID == classID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) add(c *model.Class) *model.Class {
	if c.ClassID == "" {
		c.ClassID = nextID("class", len(m.classes)+1)
	}
	m.classes[c.ClassID] = c
	return c
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if c.DepartmentID == departmentID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) add(r *model.Room) *model.Room {
	if r.RoomID == "" {
		r.RoomID = nextID("room", len(m.rooms)+1)
	}
	m.rooms[r.RoomID] = r
	return r
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if r.DepartmentID == departmentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) add(s *model.Subject) *model.Subject {
	if s.SubjectID == "" {
		s.SubjectID = nextID("subject", len(m.subjects)+1)
	}
	m.subjects[s.SubjectID] = s
	return s
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.DepartmentID == departmentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments map[string]*model.Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) add(d *model.Department) *model.Department {
	if d.DepartmentID == "" {
		d.DepartmentID = nextID("dept", len(m.departments)+1)
	}
	m.departments[d.DepartmentID] = d
	return d
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
	classes  *mockClassRepo
	rooms    *mockRoomRepo
	users    *mockUserRepo
	subjects *mockSubjectRepo
}

func newMockSessionRepo(classes *mockClassRepo, rooms *mockRoomRepo, users *mockUserRepo, subjects *mockSubjectRepo) *mockSessionRepo {
	return &mockSessionRepo{
		sessions: make(map[string]*model.Session),
		classes:  classes,
		rooms:    rooms,
		users:    users,
		subjects: subjects,
	}
}

// preload mirrors the real repository's Preload chain against the sibling
// mocks.
func (m *mockSessionRepo) preload(s *model.Session) model.Session {
	out := *s
	out.Class = m.classes.classes[s.ClassID]
	out.Room = m.rooms.rooms[s.RoomID]
	out.Professor = m.users.users[s.ProfessorID]
	out.Subject = m.subjects.subjects[s.SubjectID]
	return out
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		session.SessionID = nextID("session", len(m.sessions)+1)
	}
	session.CreatedAt = time.Now()
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.sessions[id]; !ok {
		return 0, nil
	}
	delete(m.sessions, id)
	return 1, nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		out := m.preload(s)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByClass(_ context.Context, classID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.ClassID == classID {
			result = append(result, m.preload(s))
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByProfessor(_ context.Context, professorID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.ProfessorID == professorID {
			result = append(result, m.preload(s))
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByDepartment(_ context.Context, _ string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		result = append(result, m.preload(s))
	}
	return result, nil
}

func (m *mockSessionRepo) ListBySlot(_ context.Context, day int, startTime string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.Day == day && s.StartTime == startTime {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock RatrapageRepository ──

type mockRatrapageRepo struct {
	ratrapages map[string]*model.Ratrapage
	classes    *mockClassRepo
	rooms      *mockRoomRepo
	users      *mockUserRepo
	subjects   *mockSubjectRepo
}

func newMockRatrapageRepo(classes *mockClassRepo, rooms *mockRoomRepo, users *mockUserRepo, subjects *mockSubjectRepo) *mockRatrapageRepo {
	return &mockRatrapageRepo{
		ratrapages: make(map[string]*model.Ratrapage),
		classes:    classes,
		rooms:      rooms,
		users:      users,
		subjects:   subjects,
	}
}

func (m *mockRatrapageRepo) preload(r *model.Ratrapage) model.Ratrapage {
	out := *r
	out.Class = m.classes.classes[r.ClassID]
	out.Room = m.rooms.rooms[r.RoomID]
	out.Professor = m.users.users[r.UserID]
	out.Subject = m.subjects.subjects[r.SubjectID]
	return out
}

func (m *mockRatrapageRepo) Create(_ context.Context, rat *model.Ratrapage) error {
	if rat.RatrapageID == "" {
		rat.RatrapageID = nextID("rat", len(m.ratrapages)+1)
	}
	rat.CreatedAt = time.Now()
	m.ratrapages[rat.RatrapageID] = rat
	return nil
}

func (m *mockRatrapageRepo) Update(_ context.Context, rat *model.Ratrapage) error {
	m.ratrapages[rat.RatrapageID] = rat
	return nil
}

func (m *mockRatrapageRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.ratrapages[id]; !ok {
		return 0, nil
	}
	delete(m.ratrapages, id)
	return 1, nil
}

func (m *mockRatrapageRepo) GetByID(_ context.Context, id string) (*model.Ratrapage, error) {
	if r, ok := m.ratrapages[id]; ok {
		out := m.preload(r)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRatrapageRepo) ListByClass(_ context.Context, classID string) ([]model.Ratrapage, error) {
	var result []model.Ratrapage
	for _, r := range m.ratrapages {
		if r.ClassID == classID {
			result = append(result, m.preload(r))
		}
	}
	return result, nil
}

func (m *mockRatrapageRepo) ListByProfessor(_ context.Context, professorID string) ([]model.Ratrapage, error) {
	var result []model.Ratrapage
	for _, r := range m.ratrapages {
		if r.UserID == professorID {
			result = append(result, m.preload(r))
		}
	}
	return result, nil
}

func (m *mockRatrapageRepo) ListBySlot(_ context.Context, date time.Time, startTime string) ([]model.Ratrapage, error) {
	var result []model.Ratrapage
	for _, r := range m.ratrapages {
		if r.Date.Format("2006-01-02") == date.Format("2006-01-02") && r.StartTime == startTime {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRatrapageRepo) ListByWeekdaySlot(_ context.Context, day int, startTime string) ([]model.Ratrapage, error) {
	var result []model.Ratrapage
	for _, r := range m.ratrapages {
		wd := int(r.Date.Weekday())
		if wd == day && r.StartTime == startTime {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct {
	absences map[string]*model.Absence
	users    *mockUserRepo
	sessions *mockSessionRepo
	seq      int
}

func newMockAbsenceRepo(users *mockUserRepo, sessions *mockSessionRepo) *mockAbsenceRepo {
	return &mockAbsenceRepo{
		absences: make(map[string]*model.Absence),
		users:    users,
		sessions: sessions,
	}
}

// stamp hands out strictly increasing recording times so ordering by
// recorded_at is deterministic across a test run.
func (m *mockAbsenceRepo) stamp() time.Time {
	m.seq++
	return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *mockAbsenceRepo) preload(a *model.Absence) model.Absence {
	out := *a
	out.Student = m.users.users[a.UserID]
	if s, ok := m.sessions.sessions[a.SessionID]; ok {
		sess := m.sessions.preload(s)
		out.Session = &sess
	}
	return out
}

func (m *mockAbsenceRepo) occurrenceKey(sessionID string, date time.Time, userID string) string {
	return sessionID + "|" + date.Format("2006-01-02") + "|" + userID
}

func (m *mockAbsenceRepo) findByOccurrence(sessionID string, date time.Time, userID string) *model.Absence {
	key := m.occurrenceKey(sessionID, date, userID)
	for _, a := range m.absences {
		if m.occurrenceKey(a.SessionID, a.Date, a.UserID) == key {
			return a
		}
	}
	return nil
}

func (m *mockAbsenceRepo) Upsert(_ context.Context, absence *model.Absence) error {
	if existing := m.findByOccurrence(absence.SessionID, absence.Date, absence.UserID); existing != nil {
		existing.IsAbsent = absence.IsAbsent
		existing.RecordedAt = m.stamp()
		*absence = *existing
		return nil
	}
	if absence.AbsenceID == "" {
		absence.AbsenceID = nextID("absence", len(m.absences)+1)
	}
	absence.RecordedAt = m.stamp()
	m.absences[absence.AbsenceID] = absence
	return nil
}

func (m *mockAbsenceRepo) UpsertBatch(ctx context.Context, absences []model.Absence) error {
	for i := range absences {
		if err := m.Upsert(ctx, &absences[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAbsenceRepo) GetByID(_ context.Context, id string) (*model.Absence, error) {
	if a, ok := m.absences[id]; ok {
		out := m.preload(a)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) ListByOccurrence(_ context.Context, sessionID string, date time.Time) ([]model.Absence, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if a.SessionID == sessionID && a.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			result = append(result, m.preload(a))
		}
	}
	return result, nil
}

func (m *mockAbsenceRepo) ListByStudentAndSession(_ context.Context, studentID, sessionID string) ([]model.Absence, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if a.UserID == studentID && a.SessionID == sessionID {
			result = append(result, m.preload(a))
		}
	}
	// ordered by recording time, most recent last, matching the real
	// repository's ordering
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.Before(result[j].RecordedAt)
	})
	return result, nil
}

func (m *mockAbsenceRepo) CountByClass(_ context.Context, classID string) ([]repository.AttendanceCount, error) {
	byUser := make(map[string]*repository.AttendanceCount)
	for _, a := range m.absences {
		if a.ClassID != classID {
			continue
		}
		c, ok := byUser[a.UserID]
		if !ok {
			c = &repository.AttendanceCount{UserID: a.UserID}
			byUser[a.UserID] = c
		}
		c.TotalRecords++
		if a.IsAbsent {
			c.TotalAbsences++
		}
	}
	var result []repository.AttendanceCount
	for _, c := range byUser {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock DemandeRepository ──

type mockDemandeRepo struct {
	demandes map[string]*model.Demande
	absences *mockAbsenceRepo
	users    *mockUserRepo
}

func newMockDemandeRepo(absences *mockAbsenceRepo, users *mockUserRepo) *mockDemandeRepo {
	return &mockDemandeRepo{
		demandes: make(map[string]*model.Demande),
		absences: absences,
		users:    users,
	}
}

func (m *mockDemandeRepo) preload(d *model.Demande) model.Demande {
	out := *d
	out.Student = m.users.users[d.StudentID]
	if a, ok := m.absences.absences[d.AbsenceID]; ok {
		ab := m.absences.preload(a)
		out.Absence = &ab
	}
	return out
}

func (m *mockDemandeRepo) Create(_ context.Context, demande *model.Demande) error {
	// Emulate the partial unique index on pending demandes.
	for _, d := range m.demandes {
		if d.AbsenceID == demande.AbsenceID && d.Status == model.DemandeStatusPending {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_demandes_pending"}
		}
	}
	if demande.DemandeID == "" {
		demande.DemandeID = nextID("demande", len(m.demandes)+1)
	}
	demande.CreatedAt = time.Now()
	m.demandes[demande.DemandeID] = demande
	return nil
}

func (m *mockDemandeRepo) GetByID(_ context.Context, id string) (*model.Demande, error) {
	if d, ok := m.demandes[id]; ok {
		out := m.preload(d)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDemandeRepo) ListByStatus(_ context.Context, status string) ([]model.Demande, error) {
	var result []model.Demande
	for _, d := range m.demandes {
		if d.Status == status {
			result = append(result, m.preload(d))
		}
	}
	return result, nil
}

func (m *mockDemandeRepo) ListByStudent(_ context.Context, studentID string) ([]model.Demande, error) {
	var result []model.Demande
	for _, d := range m.demandes {
		if d.StudentID == studentID {
			result = append(result, m.preload(d))
		}
	}
	return result, nil
}

func (m *mockDemandeRepo) Decide(_ context.Context, demandeID, status string, decidedAt time.Time) error {
	d, ok := m.demandes[demandeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if d.Status != model.DemandeStatusPending {
		return gorm.ErrRecordNotFound
	}
	d.Status = status
	d.DecidedAt = &decidedAt
	if status == model.DemandeStatusApproved {
		if a, found := m.absences.absences[d.AbsenceID]; found {
			a.IsAbsent = false
		}
	}
	return nil
}

// ── fixture helper ──

type testRepos struct {
	users       *mockUserRepo
	classes     *mockClassRepo
	rooms       *mockRoomRepo
	subjects    *mockSubjectRepo
	departments *mockDepartmentRepo
	sessions    *mockSessionRepo
	ratrapages  *mockRatrapageRepo
	absences    *mockAbsenceRepo
	demandes    *mockDemandeRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		users:       newMockUserRepo(),
		classes:     newMockClassRepo(),
		rooms:       newMockRoomRepo(),
		subjects:    newMockSubjectRepo(),
		departments: newMockDepartmentRepo(),
	}
	mocks.sessions = newMockSessionRepo(mocks.classes, mocks.rooms, mocks.users, mocks.subjects)
	mocks.ratrapages = newMockRatrapageRepo(mocks.classes, mocks.rooms, mocks.users, mocks.subjects)
	mocks.absences = newMockAbsenceRepo(mocks.users, mocks.sessions)
	mocks.demandes = newMockDemandeRepo(mocks.absences, mocks.users)

	repo := &repository.Repository{
		User:       mocks.users,
		Class:      mocks.classes,
		Room:       mocks.rooms,
		Subject:    mocks.subjects,
		Department: mocks.departments,
		Session:    mocks.sessions,
		Ratrapage:  mocks.ratrapages,
		Absence:    mocks.absences,
		Demande:    mocks.demandes,
	}
	return repo, mocks
}
