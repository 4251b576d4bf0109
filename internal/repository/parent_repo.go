package repository

import (
	"context"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

// ParentRepository 家长数据访问接口
type ParentRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Parent, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Parent, error)
	GetByID(ctx context.Context, id string) (*model.Parent, error)
	Create(ctx context.Context, parent *model.Parent) error
	Update(ctx context.Context, parent *model.Parent) error
	Options(ctx context.Context) ([]model.Parent, error)
	Count(ctx context.Context) (int64, error)
}

type parentRepo struct {
	db *gorm.DB
}

func NewParentRepo(db *gorm.DB) ParentRepository {
	return &parentRepo{db: db}
}

func (r *parentRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Parent, int64, error) {
	return listPage[model.Parent](ctx, r.db, f, w, "Students")
}

func (r *parentRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Parent, error) {
	return listAll[model.Parent](ctx, r.db, f, limit, "Students")
}

func (r *parentRepo) GetByID(ctx context.Context, id string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).Preload("Students").Where("id = ?", id).First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) Create(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Omit("Students").Create(parent).Error
}

func (r *parentRepo) Update(ctx context.Context, parent *model.Parent) error {
	result := r.db.WithContext(ctx).Model(parent).
		Omit("Students", "created_at", "created_by").
		Select("*").
		Updates(parent)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *parentRepo) Options(ctx context.Context) ([]model.Parent, error) {
	var parents []model.Parent
	err := r.db.WithContext(ctx).
		Select("id", "name", "surname").
		Order("name ASC, surname ASC").
		Find(&parents).Error
	return parents, err
}

func (r *parentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Parent{}).Count(&n).Error
	return n, err
}
