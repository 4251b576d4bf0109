package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
	pkgerrors "school-hub/backend/pkg/errors"
)

var (
	errUnique     = &pgconn.PgError{Code: "23505"}
	errForeignKey = &pgconn.PgError{Code: "23503"}
)

// ── 聚合 ──

type mocks struct {
	account      *mockAccountRepo
	admin        *mockAdminRepo
	teacher      *mockTeacherRepo
	student      *mockStudentRepo
	parent       *mockParentRepo
	grade        *mockGradeRepo
	class        *mockClassRepo
	subject      *mockSubjectRepo
	lesson       *mockLessonRepo
	exam         *mockExamRepo
	assignment   *mockAssignmentRepo
	event        *mockEventRepo
	announcement *mockAnnouncementRepo
	attendance   *mockAttendanceRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		account:      &mockAccountRepo{accounts: map[string]*model.Account{}},
		admin:        &mockAdminRepo{},
		teacher:      &mockTeacherRepo{teachers: map[string]*model.Teacher{}},
		parent:       &mockParentRepo{parents: map[string]*model.Parent{}},
		grade:        &mockGradeRepo{},
		subject:      &mockSubjectRepo{subjects: map[int]*model.Subject{}},
		lesson:       &mockLessonRepo{lessons: map[int]*model.Lesson{}},
		exam:         &mockExamRepo{exams: map[int]*model.Exam{}},
		assignment:   &mockAssignmentRepo{assignments: map[int]*model.Assignment{}},
		event:        &mockEventRepo{events: map[int]*model.Event{}},
		announcement: &mockAnnouncementRepo{},
		attendance:   &mockAttendanceRepo{},
	}
	m.student = &mockStudentRepo{students: map[string]*model.Student{}}
	m.class = &mockClassRepo{classes: map[int]*model.Class{}, students: m.student}

	tx := &mockTx{}
	repo := &repository.Repository{
		Tx:           tx,
		Account:      m.account,
		Admin:        m.admin,
		Teacher:      m.teacher,
		Student:      m.student,
		Parent:       m.parent,
		Grade:        m.grade,
		Class:        m.class,
		Subject:      m.subject,
		Lesson:       m.lesson,
		Exam:         m.exam,
		Assignment:   m.assignment,
		Event:        m.event,
		Announcement: m.announcement,
		Attendance:   m.attendance,
	}
	tx.repo = repo
	return repo, m
}

// mockTx 直接在同一组 mock 上执行 fn
type mockTx struct {
	repo  *repository.Repository
	calls int
}

func (t *mockTx) Transaction(_ context.Context, fn func(tx *repository.Repository) error) error {
	t.calls++
	return fn(t.repo)
}

// ── Account / Admin ──

type mockAccountRepo struct {
	accounts map[string]*model.Account
	seq      int
}

func (m *mockAccountRepo) Create(_ context.Context, a *model.Account) error {
	for _, existing := range m.accounts {
		if existing.Username == a.Username {
			return errUnique
		}
	}
	if a.ID == "" {
		m.seq++
		a.ID = fmt.Sprintf("acc-%d", m.seq)
	}
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) UpdateCredentials(_ context.Context, id, username, passwordHash string) error {
	a, ok := m.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, other := range m.accounts {
		if other.ID != id && other.Username == username {
			return errUnique
		}
	}
	a.Username = username
	if passwordHash != "" {
		a.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.accounts, id)
	return nil
}

type mockAdminRepo struct {
	count int64
	err   error
}

func (m *mockAdminRepo) Create(_ context.Context, _ *model.Admin) error {
	m.count++
	return nil
}

func (m *mockAdminRepo) Count(_ context.Context) (int64, error) { return m.count, m.err }

// ── Teacher ──

type mockTeacherRepo struct {
	teachers   map[string]*model.Teacher
	lastFilter *listquery.Filter
	listErr    error
}

func (m *mockTeacherRepo) List(_ context.Context, f *listquery.Filter, _ listquery.PageWindow) ([]model.Teacher, int64, error) {
	m.lastFilter = f
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	rows := m.all()
	return rows, int64(len(rows)), nil
}

func (m *mockTeacherRepo) ListAll(_ context.Context, f *listquery.Filter, limit int) ([]model.Teacher, error) {
	m.lastFilter = f
	return capRows(m.all(), limit), m.listErr
}

func (m *mockTeacherRepo) all() []model.Teacher {
	var rows []model.Teacher
	for _, t := range m.teachers {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Create(_ context.Context, t *model.Teacher, subjectIDs []int) error {
	cp := *t
	for _, id := range subjectIDs {
		cp.Subjects = append(cp.Subjects, model.Subject{ID: id})
	}
	m.teachers[t.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Update(_ context.Context, t *model.Teacher, subjectIDs []int) error {
	current, ok := m.teachers[t.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *t
	cp.Subjects = current.Subjects
	if subjectIDs != nil {
		cp.Subjects = nil
		for _, id := range subjectIDs {
			cp.Subjects = append(cp.Subjects, model.Subject{ID: id})
		}
	}
	m.teachers[t.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Options(_ context.Context) ([]model.Teacher, error) { return m.all(), nil }

func (m *mockTeacherRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.teachers)), nil
}

// ── Student ──

type mockStudentRepo struct {
	students   map[string]*model.Student
	lastFilter *listquery.Filter
	bySex      map[string]int64
}

func (m *mockStudentRepo) List(_ context.Context, f *listquery.Filter, _ listquery.PageWindow) ([]model.Student, int64, error) {
	m.lastFilter = f
	rows := m.all()
	return rows, int64(len(rows)), nil
}

func (m *mockStudentRepo) ListAll(_ context.Context, f *listquery.Filter, limit int) ([]model.Student, error) {
	m.lastFilter = f
	return capRows(m.all(), limit), nil
}

func (m *mockStudentRepo) all() []model.Student {
	var rows []model.Student
	for _, s := range m.students {
		rows = append(rows, *s)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByParent(_ context.Context, parentID string) ([]model.Student, error) {
	var rows []model.Student
	for _, s := range m.all() {
		if s.ParentID == parentID {
			rows = append(rows, s)
		}
	}
	return rows, nil
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	if _, ok := m.students[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *mockStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

func (m *mockStudentRepo) CountBySex(_ context.Context) (map[string]int64, error) {
	if m.bySex != nil {
		return m.bySex, nil
	}
	counts := map[string]int64{}
	for _, s := range m.students {
		counts[s.Sex]++
	}
	return counts, nil
}

// ── Parent ──

type mockParentRepo struct {
	parents map[string]*model.Parent
}

func (m *mockParentRepo) List(_ context.Context, _ *listquery.Filter, _ listquery.PageWindow) ([]model.Parent, int64, error) {
	rows := m.all()
	return rows, int64(len(rows)), nil
}

func (m *mockParentRepo) ListAll(_ context.Context, _ *listquery.Filter, limit int) ([]model.Parent, error) {
	return capRows(m.all(), limit), nil
}

func (m *mockParentRepo) all() []model.Parent {
	var rows []model.Parent
	for _, p := range m.parents {
		rows = append(rows, *p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *mockParentRepo) GetByID(_ context.Context, id string) (*model.Parent, error) {
	if p, ok := m.parents[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) Create(_ context.Context, p *model.Parent) error {
	for _, existing := range m.parents {
		if existing.Phone == p.Phone {
			return errUnique
		}
	}
	cp := *p
	m.parents[p.ID] = &cp
	return nil
}

func (m *mockParentRepo) Update(_ context.Context, p *model.Parent) error {
	if _, ok := m.parents[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	m.parents[p.ID] = &cp
	return nil
}

func (m *mockParentRepo) Options(_ context.Context) ([]model.Parent, error) { return m.all(), nil }

func (m *mockParentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.parents)), nil
}

// ── Grade / Class ──

type mockGradeRepo struct {
	grades []model.Grade
}

func (m *mockGradeRepo) List(_ context.Context) ([]model.Grade, error) { return m.grades, nil }

type mockClassRepo struct {
	classes   map[int]*model.Class
	students  *mockStudentRepo
	seq       int
	locked    []int
	deleteErr error
}

func (m *mockClassRepo) List(_ context.Context, _ *listquery.Filter, _ listquery.PageWindow) ([]model.Class, int64, error) {
	rows := m.all()
	return rows, int64(len(rows)), nil
}

func (m *mockClassRepo) ListAll(_ context.Context, _ *listquery.Filter, limit int) ([]model.Class, error) {
	return capRows(m.all(), limit), nil
}

func (m *mockClassRepo) all() []model.Class {
	var rows []model.Class
	for _, c := range m.classes {
		rows = append(rows, *c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *mockClassRepo) GetByID(_ context.Context, id int) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetForUpdate(ctx context.Context, id int) (*model.Class, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *mockClassRepo) CountStudents(_ context.Context, classID int) (int64, error) {
	var n int64
	for _, s := range m.students.students {
		if s.ClassID == classID {
			n++
		}
	}
	return n, nil
}

func (m *mockClassRepo) Create(_ context.Context, c *model.Class) error {
	for _, existing := range m.classes {
		if existing.Name == c.Name {
			return errUnique
		}
	}
	m.seq++
	c.ID = m.seq
	cp := *c
	m.classes[c.ID] = &cp
	return nil
}

func (m *mockClassRepo) Update(_ context.Context, c *model.Class) error {
	if _, ok := m.classes[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	m.classes[c.ID] = &cp
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.classes, id)
	return nil
}

func (m *mockClassRepo) Options(ctx context.Context) ([]model.ClassOption, error) {
	var opts []model.ClassOption
	for _, c := range m.all() {
		n, _ := m.CountStudents(ctx, c.ID)
		opts = append(opts, model.ClassOption{ID: c.ID, Name: c.Name, Capacity: c.Capacity, StudentCount: n})
	}
	return opts, nil
}

// ── Subject ──

type mockSubjectRepo struct {
	subjects map[int]*model.Subject
	seq      int
}

func (m *mockSubjectRepo) List(_ context.Context, _ *listquery.Filter, _ listquery.PageWindow) ([]model.Subject, int64, error) {
	rows := m.all()
	return rows, int64(len(rows)), nil
}

func (m *mockSubjectRepo) ListAll(_ context.Context, _ *listquery.Filter, limit int) ([]model.Subject, error) {
	return capRows(m.all(), limit), nil
}

func (m *mockSubjectRepo) all() []model.Subject {
	var rows []model.Subject
	for _, s := range m.subjects {
		rows = append(rows, *s)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) Create(_ context.Context, s *model.Subject, teacherIDs []string) error {
	for _, existing := range m.subjects {
		if existing.Name == s.Name {
			return errUnique
		}
	}
	m.seq++
	s.ID = m.seq
	cp := *s
	for _, id := range teacherIDs {
		cp.Teachers = append(cp.Teachers, model.Teacher{ID: id})
	}
	m.subjects[s.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject, teacherIDs []string) error {
	if _, ok := m.subjects[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	for _, id := range teacherIDs {
		cp.Teachers = append(cp.Teachers, model.Teacher{ID: id})
	}
	m.subjects[s.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.subjects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) Options(_ context.Context) ([]model.Subject, error) { return m.all(), nil }

// ── Lesson ──

type mockLessonRepo struct {
	lessons    map[int]*model.Lesson
	seq        int
	lastFilter *listquery.Filter
	listErr    error
}

func (m *mockLessonRepo) List(_ context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Lesson, int64, error) {
	m.lastFilter = f
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	rows := m.all()
	total := int64(len(rows))
	if w.Offset() >= len(rows) {
		return nil, total, nil
	}
	end := w.Offset() + w.Limit()
	if end > len(rows) {
		end = len(rows)
	}
	return rows[w.Offset():end], total, nil
}

func (m *mockLessonRepo) ListAll(_ context.Context, f *listquery.Filter, limit int) ([]model.Lesson, error) {
	m.lastFilter = f
	return capRows(m.all(), limit), nil
}

func (m *mockLessonRepo) all() []model.Lesson {
	var rows []model.Lesson
	for _, l := range m.lessons {
		rows = append(rows, *l)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *mockLessonRepo) GetByID(_ context.Context, id int) (*model.Lesson, error) {
	if l, ok := m.lessons[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Lesson, error) {
	var rows []model.Lesson
	for _, l := range m.all() {
		if l.TeacherID == teacherID {
			rows = append(rows, l)
		}
	}
	return rows, nil
}

func (m *mockLessonRepo) ListByClass(_ context.Context, classID int) ([]model.Lesson, error) {
	var rows []model.Lesson
	for _, l := range m.all() {
		if l.ClassID == classID {
			rows = append(rows, l)
		}
	}
	return rows, nil
}

func (m *mockLessonRepo) Create(_ context.Context, l *model.Lesson) error {
	m.seq++
	l.ID = m.seq
	if l.Version == 0 {
		l.Version = 1
	}
	cp := *l
	m.lessons[l.ID] = &cp
	return nil
}

func (m *mockLessonRepo) Update(_ context.Context, l *model.Lesson) error {
	current, ok := m.lessons[l.ID]
	if !ok || current.Version != l.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *l
	cp.Version = l.Version + 1
	m.lessons[l.ID] = &cp
	return nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.lessons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.lessons, id)
	return nil
}

func (m *mockLessonRepo) Options(_ context.Context, teacherID string) ([]model.Lesson, error) {
	if teacherID == "" {
		return m.all(), nil
	}
	var rows []model.Lesson
	for _, l := range m.all() {
		if l.TeacherID == teacherID {
			rows = append(rows, l)
		}
	}
	return rows, nil
}

// ── Exam / Assignment ──

type mockExamRepo struct {
	exams map[int]*model.Exam
	seq   int
}

func (m *mockExamRepo) List(_ context.Context, _ *listquery.Filter, _ listquery.PageWindow) ([]model.Exam, int64, error) {
	return nil, 0, nil
}

func (m *mockExamRepo) ListAll(_ context.Context, _ *listquery.Filter, limit int) ([]model.Exam, error) {
	var rows []model.Exam
	for _, e := range m.exams {
		rows = append(rows, *e)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return capRows(rows, limit), nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id int) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) Create(_ context.Context, e *model.Exam) error {
	m.seq++
	e.ID = m.seq
	cp := *e
	m.exams[e.ID] = &cp
	return nil
}

func (m *mockExamRepo) Update(_ context.Context, e *model.Exam) error {
	if _, ok := m.exams[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	m.exams[e.ID] = &cp
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.exams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.exams, id)
	return nil
}

type mockAssignmentRepo struct {
	assignments map[int]*model.Assignment
	seq         int
}

func (m *mockAssignmentRepo) List(_ context.Context, _ *listquery.Filter, _ listquery.PageWindow) ([]model.Assignment, int64, error) {
	return nil, 0, nil
}

func (m *mockAssignmentRepo) ListAll(_ context.Context, _ *listquery.Filter, _ int) ([]model.Assignment, error) {
	return nil, nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id int) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	m.seq++
	a.ID = m.seq
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	if _, ok := m.assignments[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

// ── Event / Announcement ──

type mockEventRepo struct {
	events     map[int]*model.Event
	seq        int
	lastFilter *listquery.Filter
	lastFrom   time.Time
	lastTo     time.Time
}

func (m *mockEventRepo) List(_ context.Context, f *listquery.Filter, _ listquery.PageWindow) ([]model.Event, int64, error) {
	m.lastFilter = f
	return nil, 0, nil
}

func (m *mockEventRepo) ListAll(_ context.Context, f *listquery.Filter, _ int) ([]model.Event, error) {
	m.lastFilter = f
	return nil, nil
}

func (m *mockEventRepo) ListBetween(_ context.Context, f *listquery.Filter, from, to time.Time) ([]model.Event, error) {
	m.lastFilter, m.lastFrom, m.lastTo = f, from, to
	var rows []model.Event
	for _, e := range m.events {
		if !e.StartTime.Before(from) && !e.StartTime.After(to) {
			rows = append(rows, *e)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StartTime.Before(rows[j].StartTime) })
	return rows, nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id int) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) Create(_ context.Context, e *model.Event) error {
	if e.ClassID != nil && *e.ClassID == 404 {
		return errForeignKey
	}
	m.seq++
	e.ID = m.seq
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventRepo) Update(_ context.Context, e *model.Event) error {
	if _, ok := m.events[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.events, id)
	return nil
}

type mockAnnouncementRepo struct {
	items      []model.Announcement
	lastFilter *listquery.Filter
	lastLimit  int
	err        error
}

func (m *mockAnnouncementRepo) List(_ context.Context, f *listquery.Filter, _ listquery.PageWindow) ([]model.Announcement, int64, error) {
	m.lastFilter = f
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.items, int64(len(m.items)), nil
}

func (m *mockAnnouncementRepo) ListAll(_ context.Context, f *listquery.Filter, limit int) ([]model.Announcement, error) {
	m.lastFilter, m.lastLimit = f, limit
	if m.err != nil {
		return nil, m.err
	}
	return capRows(m.items, limit), nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id int) (*model.Announcement, error) {
	for _, a := range m.items {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	a.ID = len(m.items) + 1
	m.items = append(m.items, *a)
	return nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	for i := range m.items {
		if m.items[i].ID == a.ID {
			m.items[i] = *a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id int) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Attendance ──

type mockAttendanceRepo struct {
	records  []model.Attendance
	lastFrom time.Time
}

func (m *mockAttendanceRepo) ListSince(_ context.Context, from time.Time) ([]model.Attendance, error) {
	m.lastFrom = from
	var rows []model.Attendance
	for _, r := range m.records {
		if !r.Date.Before(from) {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func capRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
