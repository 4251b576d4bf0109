//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
	"school-hub/backend/pkg/database"
	pkgerrors "school-hub/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=school_hub password=school_hub_password dbname=school_hub_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// fixture 两个班级、两名教师、一名家长及其孩子
type fixture struct {
	teacherA, teacherB string
	parent, student    string
	classA, classB     int
	lessonA, lessonB   int
}

func truncateAll(t *testing.T) {
	t.Helper()
	err := testDB.Exec(`TRUNCATE attendances, announcements, events, assignments, exams, lessons,
		subject_teachers, subjects, students, classes, grades, parents, teachers, admins, accounts
		RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("清空数据失败: %v", err)
	}
}

func mustAccount(t *testing.T, repo *repository.Repository, username, role string) string {
	t.Helper()
	acc := &model.Account{Username: username, PasswordHash: "x", Role: role}
	if err := repo.Account.Create(context.Background(), acc); err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}
	return acc.ID
}

func setupFixture(t *testing.T) (*repository.Repository, fixture) {
	t.Helper()
	truncateAll(t)
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	birthday := datatypes.Date(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	var fx fixture
	for i, id := range []*string{&fx.teacherA, &fx.teacherB} {
		*id = mustAccount(t, repo, fmt.Sprintf("teacher%d", i), model.RoleTeacher)
		tc := &model.Teacher{
			ID: *id, Username: fmt.Sprintf("teacher%d", i), Name: fmt.Sprintf("T%d", i), Surname: "S",
			BloodType: "A+", Sex: model.SexMale, Birthday: birthday,
		}
		if err := repo.Teacher.Create(ctx, tc, nil); err != nil {
			t.Fatalf("创建教师失败: %v", err)
		}
	}

	fx.parent = mustAccount(t, repo, "parent0", model.RoleParent)
	if err := repo.Parent.Create(ctx, &model.Parent{ID: fx.parent, Username: "parent0", Name: "P", Surname: "S", Phone: "100", Address: "addr"}); err != nil {
		t.Fatalf("创建家长失败: %v", err)
	}

	grade := &model.Grade{Level: 1}
	if err := testDB.Create(grade).Error; err != nil {
		t.Fatalf("创建年级失败: %v", err)
	}
	for i, id := range []*int{&fx.classA, &fx.classB} {
		c := &model.Class{Name: fmt.Sprintf("1%c", 'A'+i), Capacity: 2, GradeID: grade.ID}
		if err := repo.Class.Create(ctx, c); err != nil {
			t.Fatalf("创建班级失败: %v", err)
		}
		*id = c.ID
	}

	fx.student = mustAccount(t, repo, "student0", model.RoleStudent)
	st := &model.Student{
		ID: fx.student, Username: "student0", Name: "Stu", Surname: "S", BloodType: "O", Sex: model.SexFemale,
		Birthday: birthday, ParentID: fx.parent, ClassID: fx.classA, GradeID: grade.ID,
	}
	if err := repo.Student.Create(ctx, st); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	subject := &model.Subject{Name: "Algebra"}
	if err := repo.Subject.Create(ctx, subject, []string{fx.teacherA}); err != nil {
		t.Fatalf("创建科目失败: %v", err)
	}

	slot := time.Date(2021, 3, 3, 9, 0, 0, 0, time.UTC)
	for _, ls := range []struct {
		id      *int
		classID int
		teacher string
	}{{&fx.lessonA, fx.classA, fx.teacherA}, {&fx.lessonB, fx.classB, fx.teacherB}} {
		l := &model.Lesson{
			Name: "Algebra", Day: model.DayWednesday, StartTime: slot, EndTime: slot.Add(time.Hour),
			SubjectID: subject.ID, ClassID: ls.classID, TeacherID: ls.teacher,
		}
		if err := repo.Lesson.Create(ctx, l); err != nil {
			t.Fatalf("创建课程失败: %v", err)
		}
		*ls.id = l.ID
	}
	return repo, fx
}

// ═══════════════════════════════════════════════════════════
// Test: Role-scoped lists
// ═══════════════════════════════════════════════════════════

func TestList_TeacherSeesOwnClassesOnly(t *testing.T) {
	repo, fx := setupFixture(t)
	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})

	f, w, err := b.Build(listquery.EntityLessons, listquery.Params{}, listquery.RoleTeacher, fx.teacherA)
	if err != nil {
		t.Fatalf("构造过滤失败: %v", err)
	}
	lessons, total, err := repo.Lesson.List(context.Background(), f, w)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || len(lessons) != 1 || lessons[0].ID != fx.lessonA {
		t.Errorf("教师 A 应只看到 1 节课, got total=%d rows=%d", total, len(lessons))
	}
	if lessons[0].Subject == nil || lessons[0].Teacher == nil {
		t.Error("列表行应预加载科目与教师")
	}
}

func TestList_ExamsByLessonOwnership(t *testing.T) {
	repo, fx := setupFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	for _, lessonID := range []int{fx.lessonA, fx.lessonB} {
		if err := repo.Exam.Create(ctx, &model.Exam{Title: "Mid", StartTime: now, EndTime: now.Add(time.Hour), LessonID: lessonID}); err != nil {
			t.Fatalf("创建考试失败: %v", err)
		}
	}

	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})
	f, w, _ := b.Build(listquery.EntityExams, listquery.Params{"search": "alg"}, listquery.RoleTeacher, fx.teacherB)
	exams, total, err := repo.Exam.List(ctx, f, w)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || exams[0].LessonID != fx.lessonB {
		t.Errorf("教师 B 应只看到自己课程的考试, got %d", total)
	}

	f, w, _ = b.Build(listquery.EntityExams, listquery.Params{}, listquery.RoleParent, fx.parent)
	_, total, _ = repo.Exam.List(ctx, f, w)
	if total != 1 {
		t.Errorf("家长应只看到孩子班级的考试, got %d", total)
	}
}

func TestList_AnnouncementsGeneralVisible(t *testing.T) {
	repo, fx := setupFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	classB := fx.classB
	for _, a := range []*model.Announcement{
		{Title: "全校", Date: now},
		{Title: "B 班", Date: now, ClassID: &classB},
	} {
		if err := repo.Announcement.Create(ctx, a); err != nil {
			t.Fatalf("创建公告失败: %v", err)
		}
	}

	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})
	f, w, _ := b.Build(listquery.EntityAnnouncements, listquery.Params{}, listquery.RoleStudent, fx.student)
	rows, total, err := repo.Announcement.List(ctx, f, w)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || rows[0].Title != "全校" {
		t.Errorf("学生应只看到全校公告, got %d", total)
	}
}

func TestList_PageBeyondRange(t *testing.T) {
	repo, _ := setupFixture(t)
	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})
	f, w, _ := b.Build(listquery.EntityTeachers, listquery.Params{"page": "9"}, listquery.RoleAdmin, "")
	rows, total, err := repo.Teacher.List(context.Background(), f, w)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 || len(rows) != 0 {
		t.Errorf("超出范围的页应返回空列表但总数不变, got total=%d rows=%d", total, len(rows))
	}
}

func TestList_HugePageIsEmpty(t *testing.T) {
	repo, _ := setupFixture(t)
	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})
	f, w, _ := b.Build(listquery.EntityTeachers, listquery.Params{"page": "1000000000000000000"}, listquery.RoleAdmin, "")
	rows, total, err := repo.Teacher.List(context.Background(), f, w)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 || len(rows) != 0 {
		t.Errorf("超大页码应返回空列表, got total=%d rows=%d", total, len(rows))
	}
}

func TestList_MalformedTeacherIDMatchesNothing(t *testing.T) {
	repo, fx := setupFixture(t)
	ctx := context.Background()
	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})

	f, w, _ := b.Build(listquery.EntityLessons, listquery.Params{"teacherId": "abc"}, listquery.RoleAdmin, "")
	rows, total, err := repo.Lesson.List(ctx, f, w)
	if err != nil {
		t.Fatalf("非法教师 ID 不应导致查询失败: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("非法教师 ID 应匹配不到任何课程, got total=%d", total)
	}

	f, w, _ = b.Build(listquery.EntityLessons, listquery.Params{"teacherId": fx.teacherA}, listquery.RoleAdmin, "")
	_, total, err = repo.Lesson.List(ctx, f, w)
	if err != nil || total != 1 {
		t.Errorf("合法教师 ID 应匹配 1 节课, got total=%d err=%v", total, err)
	}

	f, w, _ = b.Build(listquery.EntityClasses, listquery.Params{"supervisorId": "x"}, listquery.RoleAdmin, "")
	if _, _, err := repo.Class.List(ctx, f, w); err != nil {
		t.Errorf("非法班主任 ID 不应导致查询失败: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo, _ := setupFixture(t)
	ctx := context.Background()
	sentinel := errors.New("rollback")

	err := repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		acc := &model.Account{Username: "ghost", PasswordHash: "x", Role: model.RoleAdmin}
		if err := tx.Account.Create(ctx, acc); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("期望回滚错误, got %v", err)
	}
	if _, err := repo.Account.GetByUsername(ctx, "ghost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("事务回滚后账号不应存在, got %v", err)
	}
}

func TestAccount_UniqueUsername(t *testing.T) {
	repo, _ := setupFixture(t)
	err := repo.Account.Create(context.Background(), &model.Account{Username: "teacher0", PasswordHash: "x", Role: model.RoleTeacher})
	if !pkgerrors.IsUniqueViolation(err) {
		t.Errorf("重复用户名应触发唯一约束, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock
// ═══════════════════════════════════════════════════════════

func TestLesson_OptimisticLock(t *testing.T) {
	repo, fx := setupFixture(t)
	ctx := context.Background()

	first, _ := repo.Lesson.GetByID(ctx, fx.lessonA)
	second, _ := repo.Lesson.GetByID(ctx, fx.lessonA)

	first.Name = "Geometry"
	if err := repo.Lesson.Update(ctx, first); err != nil {
		t.Fatalf("第一次更新失败: %v", err)
	}
	if first.Version != 2 {
		t.Errorf("期望 version=2, got %d", first.Version)
	}

	second.Name = "Calculus"
	if err := repo.Lesson.Update(ctx, second); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock, got %v", err)
	}
}

func TestClass_OptionsCountStudents(t *testing.T) {
	repo, fx := setupFixture(t)
	options, err := repo.Class.Options(context.Background())
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	for _, o := range options {
		if o.ID == fx.classA && o.StudentCount != 1 {
			t.Errorf("A 班应有 1 名学生, got %d", o.StudentCount)
		}
	}
}

func TestStudent_CountBySex(t *testing.T) {
	repo, _ := setupFixture(t)
	counts, err := repo.Student.CountBySex(context.Background())
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if counts[model.SexFemale] != 1 || counts[model.SexMale] != 0 {
		t.Errorf("性别统计错误: %v", counts)
	}
}
