package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
	pkgerrors "school-hub/backend/pkg/errors"
)

// ── 考核模块业务错误 ──

var (
	ErrExamNotFound       = errors.New("考试不存在")
	ErrAssignmentNotFound = errors.New("作业不存在")
)

// AssessmentService 考试与作业的维护
// 管理员可操作任意课程；教师只能操作自己任教课程下的记录
type AssessmentService interface {
	CreateExam(ctx context.Context, actor Actor, req *dto.ExamRequest) (*model.Exam, error)
	UpdateExam(ctx context.Context, actor Actor, id int, req *dto.ExamRequest) (*model.Exam, error)
	DeleteExam(ctx context.Context, actor Actor, id int) error

	CreateAssignment(ctx context.Context, actor Actor, req *dto.AssignmentRequest) (*model.Assignment, error)
	UpdateAssignment(ctx context.Context, actor Actor, id int, req *dto.AssignmentRequest) (*model.Assignment, error)
	DeleteAssignment(ctx context.Context, actor Actor, id int) error
}

type assessmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAssessmentService(repo *repository.Repository, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, logger: logger}
}

// authorizeLesson 校验调用方能否在该课程下操作
func (s *assessmentService) authorizeLesson(ctx context.Context, actor Actor, lessonID int) error {
	switch actor.Role {
	case listquery.RoleAdmin:
		if _, err := s.repo.Lesson.GetByID(ctx, lessonID); err != nil {
			return notFound(err, ErrLessonNotFound)
		}
		return nil
	case listquery.RoleTeacher:
		lesson, err := s.repo.Lesson.GetByID(ctx, lessonID)
		if err != nil {
			return notFound(err, ErrLessonNotFound)
		}
		if lesson.TeacherID != actor.ID {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}

// ── 考试 ──

func (s *assessmentService) CreateExam(ctx context.Context, actor Actor, req *dto.ExamRequest) (*model.Exam, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if err := s.authorizeLesson(ctx, actor, req.LessonID); err != nil {
		return nil, err
	}

	exam := &model.Exam{Title: req.Title, StartTime: req.StartTime, EndTime: req.EndTime, LessonID: req.LessonID}
	exam.CreatedBy = actor.auditID()
	exam.UpdatedBy = actor.auditID()
	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		return nil, s.writeError("创建考试失败", err)
	}
	return exam, nil
}

func (s *assessmentService) UpdateExam(ctx context.Context, actor Actor, id int, req *dto.ExamRequest) (*model.Exam, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	current, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrExamNotFound)
	}
	// 原课程与新课程都必须可操作
	if err := s.authorizeLesson(ctx, actor, current.LessonID); err != nil {
		return nil, err
	}
	if req.LessonID != current.LessonID {
		if err := s.authorizeLesson(ctx, actor, req.LessonID); err != nil {
			return nil, err
		}
	}

	exam := &model.Exam{ID: id, Title: req.Title, StartTime: req.StartTime, EndTime: req.EndTime, LessonID: req.LessonID}
	exam.UpdatedBy = actor.auditID()
	if err := s.repo.Exam.Update(ctx, exam); err != nil {
		return nil, s.writeError("更新考试失败", notFound(err, ErrExamNotFound))
	}
	return s.repo.Exam.GetByID(ctx, id)
}

func (s *assessmentService) DeleteExam(ctx context.Context, actor Actor, id int) error {
	current, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrExamNotFound)
	}
	if err := s.authorizeLesson(ctx, actor, current.LessonID); err != nil {
		return err
	}
	if err := s.repo.Exam.Delete(ctx, id); err != nil {
		return s.writeError("删除考试失败", notFound(err, ErrExamNotFound))
	}
	return nil
}

// ── 作业 ──

func (s *assessmentService) CreateAssignment(ctx context.Context, actor Actor, req *dto.AssignmentRequest) (*model.Assignment, error) {
	if !req.DueDate.After(req.StartDate) {
		return nil, ErrInvalidTimeRange
	}
	if err := s.authorizeLesson(ctx, actor, req.LessonID); err != nil {
		return nil, err
	}

	a := &model.Assignment{Title: req.Title, StartDate: req.StartDate, DueDate: req.DueDate, LessonID: req.LessonID}
	a.CreatedBy = actor.auditID()
	a.UpdatedBy = actor.auditID()
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		return nil, s.writeError("创建作业失败", err)
	}
	return a, nil
}

func (s *assessmentService) UpdateAssignment(ctx context.Context, actor Actor, id int, req *dto.AssignmentRequest) (*model.Assignment, error) {
	if !req.DueDate.After(req.StartDate) {
		return nil, ErrInvalidTimeRange
	}
	current, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAssignmentNotFound)
	}
	if err := s.authorizeLesson(ctx, actor, current.LessonID); err != nil {
		return nil, err
	}
	if req.LessonID != current.LessonID {
		if err := s.authorizeLesson(ctx, actor, req.LessonID); err != nil {
			return nil, err
		}
	}

	a := &model.Assignment{ID: id, Title: req.Title, StartDate: req.StartDate, DueDate: req.DueDate, LessonID: req.LessonID}
	a.UpdatedBy = actor.auditID()
	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		return nil, s.writeError("更新作业失败", notFound(err, ErrAssignmentNotFound))
	}
	return s.repo.Assignment.GetByID(ctx, id)
}

func (s *assessmentService) DeleteAssignment(ctx context.Context, actor Actor, id int) error {
	current, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrAssignmentNotFound)
	}
	if err := s.authorizeLesson(ctx, actor, current.LessonID); err != nil {
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		return s.writeError("删除作业失败", notFound(err, ErrAssignmentNotFound))
	}
	return nil
}

func (s *assessmentService) writeError(msg string, err error) error {
	switch {
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	case isBusinessError(err):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
