package repository

import (
	"context"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Teacher, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Teacher, error)
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	Create(ctx context.Context, teacher *model.Teacher, subjectIDs []int) error
	Update(ctx context.Context, teacher *model.Teacher, subjectIDs []int) error
	Options(ctx context.Context) ([]model.Teacher, error)
	Count(ctx context.Context) (int64, error)
}

type teacherRepo struct {
	db *gorm.DB
}

func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Teacher, int64, error) {
	return listPage[model.Teacher](ctx, r.db, f, w, "Subjects", "Classes")
}

func (r *teacherRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Teacher, error) {
	return listAll[model.Teacher](ctx, r.db, f, limit, "Subjects", "Classes")
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Subjects").
		Preload("Classes").
		Where("id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher, subjectIDs []int) error {
	if err := r.db.WithContext(ctx).Omit("Subjects", "Classes").Create(teacher).Error; err != nil {
		return err
	}
	return replaceSubjects(ctx, r.db, teacher, subjectIDs)
}

// Update subjectIDs 为 nil 时不改动任教科目
func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher, subjectIDs []int) error {
	result := r.db.WithContext(ctx).Model(teacher).
		Omit("Subjects", "Classes", "created_at", "created_by").
		Select("*").
		Updates(teacher)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if subjectIDs == nil {
		return nil
	}
	return replaceSubjects(ctx, r.db, teacher, subjectIDs)
}

func replaceSubjects(ctx context.Context, db *gorm.DB, teacher *model.Teacher, subjectIDs []int) error {
	subjects := make([]model.Subject, 0, len(subjectIDs))
	for _, id := range subjectIDs {
		subjects = append(subjects, model.Subject{ID: id})
	}
	return db.WithContext(ctx).Model(teacher).Association("Subjects").Replace(subjects)
}

func (r *teacherRepo) Options(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Select("id", "name", "surname").
		Order("name ASC, surname ASC").
		Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Teacher{}).Count(&n).Error
	return n, err
}
