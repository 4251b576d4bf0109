package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
)

// EventRepository 活动数据访问接口
type EventRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Event, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Event, error)
	// ListBetween 开始时间落在 [from, to] 内的活动，按开始时间升序
	ListBetween(ctx context.Context, f *listquery.Filter, from, to time.Time) ([]model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Event, int64, error) {
	return listPage[model.Event](ctx, r.db, f, w, "Class")
}

func (r *eventRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Event, error) {
	return listAll[model.Event](ctx, r.db, f, limit, "Class")
}

func (r *eventRepo) ListBetween(ctx context.Context, f *listquery.Filter, from, to time.Time) ([]model.Event, error) {
	q, err := applyFilter(r.db.WithContext(ctx).Model(&model.Event{}), f)
	if err != nil {
		return nil, err
	}
	var events []model.Event
	err = q.Where("events.start_time BETWEEN ? AND ?", from, to).
		Order("events.start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) GetByID(ctx context.Context, id int) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Preload("Class").Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Omit("Class").Create(event).Error
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	result := r.db.WithContext(ctx).Model(event).
		Select("title", "description", "start_time", "end_time", "class_id", "updated_by").
		Updates(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Event{}, id)
}

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Announcement, int64, error)
	ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Announcement, error)
	GetByID(ctx context.Context, id int) (*model.Announcement, error)
	Create(ctx context.Context, announcement *model.Announcement) error
	Update(ctx context.Context, announcement *model.Announcement) error
	Delete(ctx context.Context, id int) error
}

type announcementRepo struct {
	db *gorm.DB
}

func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) List(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) ([]model.Announcement, int64, error) {
	return listPage[model.Announcement](ctx, r.db, f, w, "Class")
}

// ListAll 按日期倒序，可用于取最新 N 条
func (r *announcementRepo) ListAll(ctx context.Context, f *listquery.Filter, limit int) ([]model.Announcement, error) {
	return listAll[model.Announcement](ctx, r.db, f, limit, "Class")
}

func (r *announcementRepo) GetByID(ctx context.Context, id int) (*model.Announcement, error) {
	var a model.Announcement
	if err := r.db.WithContext(ctx).Preload("Class").Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Omit("Class").Create(announcement).Error
}

func (r *announcementRepo) Update(ctx context.Context, announcement *model.Announcement) error {
	result := r.db.WithContext(ctx).Model(announcement).
		Select("title", "description", "date", "class_id", "updated_by").
		Updates(announcement)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *announcementRepo) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, &model.Announcement{}, id)
}
