package repository

import (
	"context"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

var lessonPreloads = []string{"Lesson", "Lesson.Subject", "Lesson.Class", "Lesson.Teacher"}

// ExamRepository 考试数据访问接口
type ExamRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Exam, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Exam, error)
	GetByID(ctx context.Context, id int) (*model.Exam, error)
	Create(ctx context.Context, exam *model.Exam) error
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id int) error
}

type examRepo struct {
	db *gorm.DB
}

func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Exam, int64, error) {
	return listPage[model.Exam](ctx, r.db, f, w, lessonPreloads...)
}

func (r *examRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Exam, error) {
	return listAll[model.Exam](ctx, r.db, f, limit, lessonPreloads...)
}

func (r *examRepo) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).Preload("Lesson").Where("id = ?", id).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Omit("Lesson").Create(exam).Error
}

func (r *examRepo) Update(ctx context.Context, exam *model.Exam) error {
	result := r.db.WithContext(ctx).Model(exam).
		Select("title", "start_time", "end_time", "lesson_id", "updated_by").
		Updates(exam)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *examRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Exam{}, id)
}

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Assignment, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Assignment, error)
	GetByID(ctx context.Context, id int) (*model.Assignment, error)
	Create(ctx context.Context, assignment *model.Assignment) error
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id int) error
}

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Assignment, int64, error) {
	return listPage[model.Assignment](ctx, r.db, f, w, lessonPreloads...)
}

func (r *assignmentRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Assignment, error) {
	return listAll[model.Assignment](ctx, r.db, f, limit, lessonPreloads...)
}

func (r *assignmentRepo) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).Preload("Lesson").Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Omit("Lesson").Create(assignment).Error
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	result := r.db.WithContext(ctx).Model(assignment).
		Select("title", "start_date", "due_date", "lesson_id", "updated_by").
		Updates(assignment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Assignment{}, id)
}
