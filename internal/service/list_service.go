package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
	applogger "school-hub/backend/pkg/logger"
)

var (
	ErrUnknownList     = errors.New("列表不存在")
	ErrListUnavailable = errors.New("加载列表失败，请稍后重试")
)

// ListResult 一页列表数据
type ListResult struct {
	Items  interface{}
	Total  int64
	Window listquery.PageWindow
}

// ListService 角色受限的分页列表
//
// 每个列表视图共用同一条流水线：Builder 构造过滤描述符与分页窗口，
// 仓储在一个只读事务内取出当前页与总数。数据源故障统一记录日志并
// 转换为 ErrListUnavailable。
type ListService interface {
	List(ctx context.Context, entity listquery.Entity, params listquery.Params, actor Actor) (*ListResult, error)
}

type listService struct {
	repo    *repository.Repository
	builder *listquery.Builder
	logger  *zap.Logger
}

func NewListService(repo *repository.Repository, builder *listquery.Builder, logger *zap.Logger) ListService {
	return &listService{repo: repo, builder: builder, logger: logger}
}

func (s *listService) List(ctx context.Context, entity listquery.Entity, params listquery.Params, actor Actor) (*ListResult, error) {
	f, w, err := s.builder.Build(entity, params, actor.Role, actor.ID)
	if err != nil {
		return nil, mapBuildError(err)
	}

	items, total, err := s.fetchPage(ctx, f, w)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询列表失败",
			zap.String("entity", string(entity)),
			zap.String("role", actor.Role.String()),
			zap.Error(err),
		)
		return nil, ErrListUnavailable
	}

	return &ListResult{Items: items, Total: total, Window: w}, nil
}

func mapBuildError(err error) error {
	switch {
	case errors.Is(err, listquery.ErrUnknownEntity):
		return ErrUnknownList
	case errors.Is(err, listquery.ErrMissingActor):
		return ErrForbidden
	}
	return err
}

func (s *listService) fetchPage(ctx context.Context, f *listquery.Filter, w listquery.PageWindow) (interface{}, int64, error) {
	switch f.Entity {
	case listquery.EntityAnnouncements:
		return page[model.Announcement](s.repo.Announcement.List(ctx, f, w))
	case listquery.EntityAssignments:
		return page[model.Assignment](s.repo.Assignment.List(ctx, f, w))
	case listquery.EntityClasses:
		return page[model.Class](s.repo.Class.List(ctx, f, w))
	case listquery.EntityEvents:
		return page[model.Event](s.repo.Event.List(ctx, f, w))
	case listquery.EntityExams:
		return page[model.Exam](s.repo.Exam.List(ctx, f, w))
	case listquery.EntityLessons:
		return page[model.Lesson](s.repo.Lesson.List(ctx, f, w))
	case listquery.EntityParents:
		return page[model.Parent](s.repo.Parent.List(ctx, f, w))
	case listquery.EntityStudents:
		return page[model.Student](s.repo.Student.List(ctx, f, w))
	case listquery.EntitySubjects:
		return page[model.Subject](s.repo.Subject.List(ctx, f, w))
	case listquery.EntityTeachers:
		return page[model.Teacher](s.repo.Teacher.List(ctx, f, w))
	}
	return nil, 0, ErrUnknownList
}

// page 统一返回值形态；空结果输出 [] 而不是 null
func page[T any](rows []T, total int64, err error) (interface{}, int64, error) {
	if err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, total, nil
}
