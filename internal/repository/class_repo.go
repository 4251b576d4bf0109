package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Class, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Class, error)
	GetByID(ctx context.Context, id int) (*model.Class, error)
	GetForUpdate(ctx context.Context, id int) (*model.Class, error)
	CountStudents(ctx context.Context, classID int) (int64, error)
	Create(ctx context.Context, class *model.Class) error
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id int) error
	Options(ctx context.Context) ([]model.ClassOption, error)
}

type classRepo struct {
	db *gorm.DB
}

func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Class, int64, error) {
	return listPage[model.Class](ctx, r.db, f, w, "Supervisor", "Grade")
}

func (r *classRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Class, error) {
	return listAll[model.Class](ctx, r.db, f, limit, "Supervisor", "Grade")
}

func (r *classRepo) GetByID(ctx context.Context, id int) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Preload("Grade").
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// GetForUpdate 锁定班级行，用于在事务内做容量检查
func (r *classRepo) GetForUpdate(ctx context.Context, id int) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) CountStudents(ctx context.Context, classID int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Where("class_id = ?", classID).Count(&n).Error
	return n, err
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Omit("Supervisor", "Grade").Create(class).Error
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	result := r.db.WithContext(ctx).Model(class).
		Omit("Supervisor", "Grade", "created_at", "created_by").
		Select("*").
		Updates(class)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *classRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Class{}, id)
}

func (r *classRepo) Options(ctx context.Context) ([]model.ClassOption, error) {
	var options []model.ClassOption
	err := r.db.WithContext(ctx).
		Table("classes c").
		Select("c.id, c.name, c.capacity, COUNT(s.id) AS student_count").
		Joins("LEFT JOIN students s ON s.class_id = c.id").
		Group("c.id, c.name, c.capacity").
		Order("c.name ASC").
		Scan(&options).Error
	return options, err
}

// GradeRepository 年级数据访问接口
type GradeRepository interface {
	List(ctx context.Context) ([]model.Grade, error)
}

type gradeRepo struct {
	db *gorm.DB
}

func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).Order("level ASC").Find(&grades).Error
	return grades, err
}

// deleteByID 按主键硬删除，未命中返回 gorm.ErrRecordNotFound
func deleteByID(ctx context.Context, db *gorm.DB, m interface{}, id interface{}) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
