package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
	pkgerrors "school-hub/backend/pkg/errors"
)

// ── 公告栏模块业务错误 ──

var (
	ErrEventNotFound        = errors.New("活动不存在")
	ErrAnnouncementNotFound = errors.New("公告不存在")
)

// BulletinService 活动与公告的维护（仅管理员）
type BulletinService interface {
	CreateEvent(ctx context.Context, actor Actor, req *dto.EventRequest) (*model.Event, error)
	UpdateEvent(ctx context.Context, actor Actor, id int, req *dto.EventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, id int) error

	CreateAnnouncement(ctx context.Context, actor Actor, req *dto.AnnouncementRequest) (*model.Announcement, error)
	UpdateAnnouncement(ctx context.Context, actor Actor, id int, req *dto.AnnouncementRequest) (*model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int) error
}

type bulletinService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewBulletinService(repo *repository.Repository, logger *zap.Logger) BulletinService {
	return &bulletinService{repo: repo, logger: logger}
}

func (s *bulletinService) CreateEvent(ctx context.Context, actor Actor, req *dto.EventRequest) (*model.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	e := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClassID:     req.ClassID,
	}
	e.CreatedBy = actor.auditID()
	e.UpdatedBy = actor.auditID()
	if err := s.repo.Event.Create(ctx, e); err != nil {
		return nil, s.writeError("创建活动失败", err)
	}
	return e, nil
}

func (s *bulletinService) UpdateEvent(ctx context.Context, actor Actor, id int, req *dto.EventRequest) (*model.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	e := &model.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClassID:     req.ClassID,
	}
	e.UpdatedBy = actor.auditID()
	if err := s.repo.Event.Update(ctx, e); err != nil {
		return nil, s.writeError("更新活动失败", notFound(err, ErrEventNotFound))
	}
	return s.repo.Event.GetByID(ctx, id)
}

func (s *bulletinService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		return s.writeError("删除活动失败", notFound(err, ErrEventNotFound))
	}
	return nil
}

func (s *bulletinService) CreateAnnouncement(ctx context.Context, actor Actor, req *dto.AnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		ClassID:     req.ClassID,
	}
	a.CreatedBy = actor.auditID()
	a.UpdatedBy = actor.auditID()
	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		return nil, s.writeError("创建公告失败", err)
	}
	return a, nil
}

func (s *bulletinService) UpdateAnnouncement(ctx context.Context, actor Actor, id int, req *dto.AnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		ClassID:     req.ClassID,
	}
	a.UpdatedBy = actor.auditID()
	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		return nil, s.writeError("更新公告失败", notFound(err, ErrAnnouncementNotFound))
	}
	return s.repo.Announcement.GetByID(ctx, id)
}

func (s *bulletinService) DeleteAnnouncement(ctx context.Context, id int) error {
	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		return s.writeError("删除公告失败", notFound(err, ErrAnnouncementNotFound))
	}
	return nil
}

func (s *bulletinService) writeError(msg string, err error) error {
	switch {
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	case isBusinessError(err):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
