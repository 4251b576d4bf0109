package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// AssessmentHandler 考试与作业 HTTP 处理器
// 管理员可操作全部记录，教师只能操作自己任教课程下的记录
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
}

// NewAssessmentHandler 创建 AssessmentHandler
func NewAssessmentHandler(assessmentSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// CreateExam 创建考试
// POST /api/v1/exams
func (h *AssessmentHandler) CreateExam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exam, err := h.assessmentSvc.CreateExam(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.Created(c, exam)
}

// UpdateExam 更新考试
// PUT /api/v1/exams/:id
func (h *AssessmentHandler) UpdateExam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exam, err := h.assessmentSvc.UpdateExam(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.OK(c, exam)
}

// DeleteExam 删除考试
// DELETE /api/v1/exams/:id
func (h *AssessmentHandler) DeleteExam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.assessmentSvc.DeleteExam(c.Request.Context(), actor, id); err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.OK(c, nil)
}

// CreateAssignment 创建作业
// POST /api/v1/assignments
func (h *AssessmentHandler) CreateAssignment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	assignment, err := h.assessmentSvc.CreateAssignment(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.Created(c, assignment)
}

// UpdateAssignment 更新作业
// PUT /api/v1/assignments/:id
func (h *AssessmentHandler) UpdateAssignment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	assignment, err := h.assessmentSvc.UpdateAssignment(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.OK(c, assignment)
}

// DeleteAssignment 删除作业
// DELETE /api/v1/assignments/:id
func (h *AssessmentHandler) DeleteAssignment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.assessmentSvc.DeleteAssignment(c.Request.Context(), actor, id); err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		response.NotFound(c, 14001, "考试不存在")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 14002, "作业不存在")
	case errors.Is(err, service.ErrLessonNotFound):
		response.BadRequest(c, 14003, "课程不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 14004, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 14005, "关联的记录不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 14006, "只能管理自己任教课程的考试与作业")
	default:
		response.InternalError(c)
	}
}
