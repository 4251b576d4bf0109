package repository

import (
	"context"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Student, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	ListByParent(ctx context.Context, parentID string) ([]model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	Count(ctx context.Context) (int64, error)
	CountBySex(ctx context.Context) (map[string]int64, error)
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Student, int64, error) {
	return listPage[model.Student](ctx, r.db, f, w, "Class")
}

func (r *studentRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Student, error) {
	return listAll[model.Student](ctx, r.db, f, limit, "Class")
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Grade").
		Preload("Parent").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByParent(ctx context.Context, parentID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Omit("Parent", "Class", "Grade").Create(student).Error
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	result := r.db.WithContext(ctx).Model(student).
		Omit("Parent", "Class", "Grade", "created_at", "created_by").
		Select("*").
		Updates(student)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&n).Error
	return n, err
}

func (r *studentRepo) CountBySex(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Sex   string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Select("sex, COUNT(*) AS count").
		Group("sex").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Sex] = row.Count
	}
	return out, nil
}
