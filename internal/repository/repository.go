package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor 在一个数据库事务中执行 fn，fn 收到绑定该事务的 Repository
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *Repository) error) error
}

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Tx           Transactor
	Account      AccountRepository
	Admin        AdminRepository
	Teacher      TeacherRepository
	Student      StudentRepository
	Parent       ParentRepository
	Grade        GradeRepository
	Class        ClassRepository
	Subject      SubjectRepository
	Lesson       LessonRepository
	Exam         ExamRepository
	Assignment   AssignmentRepository
	Event        EventRepository
	Announcement AnnouncementRepository
	Attendance   AttendanceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Tx:           &gormTransactor{db: db},
		Account:      NewAccountRepo(db),
		Admin:        NewAdminRepo(db),
		Teacher:      NewTeacherRepo(db),
		Student:      NewStudentRepo(db),
		Parent:       NewParentRepo(db),
		Grade:        NewGradeRepo(db),
		Class:        NewClassRepo(db),
		Subject:      NewSubjectRepo(db),
		Lesson:       NewLessonRepo(db),
		Exam:         NewExamRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Event:        NewEventRepo(db),
		Announcement: NewAnnouncementRepo(db),
		Attendance:   NewAttendanceRepo(db),
	}
}

type gormTransactor struct {
	db *gorm.DB
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
