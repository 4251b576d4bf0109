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

// ── 教学模块业务错误 ──

var (
	ErrSubjectNotFound  = errors.New("科目不存在")
	ErrSubjectNameTaken = errors.New("科目名称已存在")
	ErrClassNotFound    = errors.New("班级不存在")
	ErrClassNameTaken   = errors.New("班级名称已存在")
	ErrCapacityTooSmall = errors.New("班级容量不能小于现有人数")
	ErrLessonNotFound   = errors.New("课程不存在")
	ErrVersionRequired  = errors.New("更新课程时必须提供版本号")
)

// AcademicService 科目、班级、课程的维护
type AcademicService interface {
	GetSubject(ctx context.Context, id int) (*model.Subject, error)
	CreateSubject(ctx context.Context, actor Actor, req *dto.SubjectRequest) (*model.Subject, error)
	UpdateSubject(ctx context.Context, actor Actor, id int, req *dto.SubjectRequest) (*model.Subject, error)
	DeleteSubject(ctx context.Context, id int) error

	GetClass(ctx context.Context, id int) (*model.Class, error)
	CreateClass(ctx context.Context, actor Actor, req *dto.ClassRequest) (*model.Class, error)
	UpdateClass(ctx context.Context, actor Actor, id int, req *dto.ClassRequest) (*model.Class, error)
	DeleteClass(ctx context.Context, id int) error

	GetLesson(ctx context.Context, id int) (*model.Lesson, error)
	CreateLesson(ctx context.Context, actor Actor, req *dto.LessonRequest) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, actor Actor, id int, req *dto.LessonRequest) (*model.Lesson, error)
	DeleteLesson(ctx context.Context, id int) error
}

type academicService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAcademicService(repo *repository.Repository, logger *zap.Logger) AcademicService {
	return &academicService{repo: repo, logger: logger}
}

// ── 科目 ──

func (s *academicService) GetSubject(ctx context.Context, id int) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSubjectNotFound)
	}
	return subject, nil
}

func (s *academicService) CreateSubject(ctx context.Context, actor Actor, req *dto.SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{Name: req.Name}
	subject.CreatedBy = actor.auditID()
	subject.UpdatedBy = actor.auditID()

	if err := s.repo.Subject.Create(ctx, subject, req.Teachers); err != nil {
		return nil, s.writeError("创建科目失败", err, ErrSubjectNameTaken)
	}
	return s.GetSubject(ctx, subject.ID)
}

func (s *academicService) UpdateSubject(ctx context.Context, actor Actor, id int, req *dto.SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{ID: id, Name: req.Name}
	subject.UpdatedBy = actor.auditID()

	teachers := req.Teachers
	if teachers == nil {
		teachers = []string{}
	}
	if err := s.repo.Subject.Update(ctx, subject, teachers); err != nil {
		return nil, s.writeError("更新科目失败", notFound(err, ErrSubjectNotFound), ErrSubjectNameTaken)
	}
	return s.GetSubject(ctx, id)
}

func (s *academicService) DeleteSubject(ctx context.Context, id int) error {
	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		return s.deleteError("删除科目失败", notFound(err, ErrSubjectNotFound))
	}
	return nil
}

// ── 班级 ──

func (s *academicService) GetClass(ctx context.Context, id int) (*model.Class, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClassNotFound)
	}
	return class, nil
}

func (s *academicService) CreateClass(ctx context.Context, actor Actor, req *dto.ClassRequest) (*model.Class, error) {
	class := classFromRequest(req)
	class.CreatedBy = actor.auditID()
	class.UpdatedBy = actor.auditID()

	if err := s.repo.Class.Create(ctx, class); err != nil {
		return nil, s.writeError("创建班级失败", err, ErrClassNameTaken)
	}
	return s.GetClass(ctx, class.ID)
}

func (s *academicService) UpdateClass(ctx context.Context, actor Actor, id int, req *dto.ClassRequest) (*model.Class, error) {
	class := classFromRequest(req)
	class.ID = id
	class.UpdatedBy = actor.auditID()

	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Class.GetForUpdate(ctx, id); err != nil {
			return notFound(err, ErrClassNotFound)
		}
		n, err := tx.Class.CountStudents(ctx, id)
		if err != nil {
			return err
		}
		if int64(req.Capacity) < n {
			return ErrCapacityTooSmall
		}
		return tx.Class.Update(ctx, class)
	})
	if err != nil {
		return nil, s.writeError("更新班级失败", notFound(err, ErrClassNotFound), ErrClassNameTaken)
	}
	return s.GetClass(ctx, id)
}

func (s *academicService) DeleteClass(ctx context.Context, id int) error {
	if err := s.repo.Class.Delete(ctx, id); err != nil {
		return s.deleteError("删除班级失败", notFound(err, ErrClassNotFound))
	}
	return nil
}

func classFromRequest(req *dto.ClassRequest) *model.Class {
	return &model.Class{
		Name:         req.Name,
		Capacity:     req.Capacity,
		GradeID:      req.GradeID,
		SupervisorID: req.SupervisorID,
	}
}

// ── 课程 ──

func (s *academicService) GetLesson(ctx context.Context, id int) (*model.Lesson, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLessonNotFound)
	}
	return lesson, nil
}

func (s *academicService) CreateLesson(ctx context.Context, actor Actor, req *dto.LessonRequest) (*model.Lesson, error) {
	lesson, err := lessonFromRequest(req)
	if err != nil {
		return nil, err
	}
	lesson.CreatedBy = actor.auditID()
	lesson.UpdatedBy = actor.auditID()

	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		return nil, s.writeError("创建课程失败", err, nil)
	}
	return s.GetLesson(ctx, lesson.ID)
}

func (s *academicService) UpdateLesson(ctx context.Context, actor Actor, id int, req *dto.LessonRequest) (*model.Lesson, error) {
	if req.Version < 1 {
		return nil, ErrVersionRequired
	}
	lesson, err := lessonFromRequest(req)
	if err != nil {
		return nil, err
	}
	lesson.ID = id
	lesson.Version = req.Version
	lesson.UpdatedBy = actor.auditID()

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 版本不匹配也可能是记录已被删除
			if _, getErr := s.repo.Lesson.GetByID(ctx, id); getErr != nil {
				return nil, notFound(getErr, ErrLessonNotFound)
			}
			return nil, ErrConflict
		}
		return nil, s.writeError("更新课程失败", err, nil)
	}
	return s.GetLesson(ctx, id)
}

func (s *academicService) DeleteLesson(ctx context.Context, id int) error {
	if err := s.repo.Lesson.Delete(ctx, id); err != nil {
		return s.deleteError("删除课程失败", notFound(err, ErrLessonNotFound))
	}
	return nil
}

func lessonFromRequest(req *dto.LessonRequest) (*model.Lesson, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	return &model.Lesson{
		Name:      req.Name,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SubjectID: req.SubjectID,
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	}, nil
}

// writeError 约束错误转为业务错误；uniqueErr 为 nil 时唯一约束冲突按普通错误处理
func (s *academicService) writeError(msg string, err, uniqueErr error) error {
	switch {
	case uniqueErr != nil && pkgerrors.IsUniqueViolation(err):
		return uniqueErr
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	case isBusinessError(err):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

func (s *academicService) deleteError(msg string, err error) error {
	switch {
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInUse
	case isBusinessError(err):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
