package repository

import (
	"context"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	pkgerrors "school-hub/backend/pkg/errors"
)

// LessonRepository 课程数据访问接口
type LessonRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Lesson, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Lesson, error)
	GetByID(ctx context.Context, id int) (*model.Lesson, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Lesson, error)
	ListByClass(ctx context.Context, classID int) ([]model.Lesson, error)
	Create(ctx context.Context, lesson *model.Lesson) error
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id int) error
	Options(ctx context.Context, teacherID string) ([]model.Lesson, error)
}

type lessonRepo struct {
	db *gorm.DB
}

func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Lesson, int64, error) {
	return listPage[model.Lesson](ctx, r.db, f, w, "Subject", "Class", "Teacher")
}

func (r *lessonRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Lesson, error) {
	return listAll[model.Lesson](ctx, r.db, f, limit, "Subject", "Class", "Teacher")
}

func (r *lessonRepo) GetByID(ctx context.Context, id int) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Class").
		Preload("Teacher").
		Where("id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("start_time ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListByClass(ctx context.Context, classID int) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("start_time ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Omit("Subject", "Class", "Teacher").Create(lesson).Error
}

// Update 乐观锁：version 不匹配时返回 ErrOptimisticLock
func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	oldVersion := lesson.Version
	result := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("id = ? AND version = ?", lesson.ID, oldVersion).
		Updates(map[string]interface{}{
			"name":       lesson.Name,
			"day":        lesson.Day,
			"start_time": lesson.StartTime,
			"end_time":   lesson.EndTime,
			"subject_id": lesson.SubjectID,
			"class_id":   lesson.ClassID,
			"teacher_id": lesson.TeacherID,
			"updated_by": lesson.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	lesson.Version = oldVersion + 1
	return nil
}

func (r *lessonRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Lesson{}, id)
}

// Options teacherID 非空时只列出该教师的课程
func (r *lessonRepo) Options(ctx context.Context, teacherID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	q := r.db.WithContext(ctx).Select("id", "name", "teacher_id")
	if teacherID != "" {
		q = q.Where("teacher_id = ?", teacherID)
	}
	err := q.Order("name ASC, id ASC").Find(&lessons).Error
	return lessons, err
}
