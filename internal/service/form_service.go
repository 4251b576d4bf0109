package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/repository"
)

// ErrUnknownForm 表单类型不存在
var ErrUnknownForm = errors.New("表单类型不存在")

// 表单类型
const (
	FormSubject      = "subject"
	FormClass        = "class"
	FormTeacher      = "teacher"
	FormStudent      = "student"
	FormParent       = "parent"
	FormLesson       = "lesson"
	FormExam         = "exam"
	FormAssignment   = "assignment"
	FormEvent        = "event"
	FormAnnouncement = "announcement"
)

// FormService 表单下拉选项
type FormService interface {
	// Related 返回表单需要的关联数据；教师只能看到自己任教的课程
	Related(ctx context.Context, table string, actor Actor) (*dto.RelatedData, error)
}

type formService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewFormService(repo *repository.Repository, logger *zap.Logger) FormService {
	return &formService{repo: repo, logger: logger}
}

func (s *formService) Related(ctx context.Context, table string, actor Actor) (*dto.RelatedData, error) {
	if actor.Role != listquery.RoleAdmin && actor.Role != listquery.RoleTeacher {
		return nil, ErrForbidden
	}

	var (
		data dto.RelatedData
		err  error
	)
	switch table {
	case FormSubject:
		data.Teachers, err = s.repo.Teacher.Options(ctx)
	case FormClass:
		if data.Teachers, err = s.repo.Teacher.Options(ctx); err == nil {
			data.Grades, err = s.repo.Grade.List(ctx)
		}
	case FormTeacher:
		data.Subjects, err = s.repo.Subject.Options(ctx)
	case FormStudent:
		if data.Grades, err = s.repo.Grade.List(ctx); err == nil {
			if data.Classes, err = s.repo.Class.Options(ctx); err == nil {
				data.Parents, err = s.repo.Parent.Options(ctx)
			}
		}
	case FormParent:
		// 家长表单无关联数据
	case FormLesson:
		if data.Subjects, err = s.repo.Subject.Options(ctx); err == nil {
			if data.Classes, err = s.repo.Class.Options(ctx); err == nil {
				data.Teachers, err = s.repo.Teacher.Options(ctx)
			}
		}
	case FormExam, FormAssignment:
		teacherID := ""
		if actor.Role == listquery.RoleTeacher {
			if actor.ID == "" {
				return nil, ErrForbidden
			}
			teacherID = actor.ID
		}
		data.Lessons, err = s.repo.Lesson.Options(ctx, teacherID)
	case FormEvent, FormAnnouncement:
		data.Classes, err = s.repo.Class.Options(ctx)
	default:
		return nil, ErrUnknownForm
	}

	if err != nil {
		s.logger.Error("查询表单关联数据失败", zap.String("table", table), zap.Error(err))
		return nil, err
	}
	return &data, nil
}
