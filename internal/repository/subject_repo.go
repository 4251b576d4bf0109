package repository

import (
	"context"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Subject, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Subject, error)
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	Create(ctx context.Context, subject *model.Subject, teacherIDs []string) error
	Update(ctx context.Context, subject *model.Subject, teacherIDs []string) error
	Delete(ctx context.Context, id int) error
	Options(ctx context.Context) ([]model.Subject, error)
}

type subjectRepo struct {
	db *gorm.DB
}

func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Subject, int64, error) {
	return listPage[model.Subject](ctx, r.db, f, w, "Teachers")
}

func (r *subjectRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Subject, error) {
	return listAll[model.Subject](ctx, r.db, f, limit, "Teachers")
}

func (r *subjectRepo) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).Preload("Teachers").Where("id = ?", id).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject, teacherIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Teachers").Create(subject).Error; err != nil {
			return err
		}
		return replaceTeachers(tx, subject, teacherIDs)
	})
}

func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject, teacherIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(subject).
			Select("name", "updated_by").
			Updates(subject)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceTeachers(tx, subject, teacherIDs)
	})
}

func replaceTeachers(tx *gorm.DB, subject *model.Subject, teacherIDs []string) error {
	teachers := make([]model.Teacher, 0, len(teacherIDs))
	for _, id := range teacherIDs {
		teachers = append(teachers, model.Teacher{ID: id})
	}
	return tx.Model(subject).Association("Teachers").Replace(teachers)
}

func (r *subjectRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Subject{}, id)
}

func (r *subjectRepo) Options(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Select("id", "name").Order("name ASC").Find(&subjects).Error
	return subjects, err
}
