package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// AcademicHandler 教学模块（科目 / 班级 / 课程）HTTP 处理器
type AcademicHandler struct {
	academicSvc service.AcademicService
}

// NewAcademicHandler 创建 AcademicHandler
func NewAcademicHandler(academicSvc service.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicSvc: academicSvc}
}

// GetSubject 科目详情
// GET /api/v1/subjects/:id
func (h *AcademicHandler) GetSubject(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	subject, err := h.academicSvc.GetSubject(c.Request.Context(), id)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, subject)
}

// CreateSubject 创建科目
// POST /api/v1/subjects
func (h *AcademicHandler) CreateSubject(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	subject, err := h.academicSvc.CreateSubject(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.Created(c, subject)
}

// UpdateSubject 更新科目
// PUT /api/v1/subjects/:id
func (h *AcademicHandler) UpdateSubject(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	subject, err := h.academicSvc.UpdateSubject(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, subject)
}

// DeleteSubject 删除科目
// DELETE /api/v1/subjects/:id
func (h *AcademicHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.academicSvc.DeleteSubject(c.Request.Context(), id); err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetClass 班级详情
// GET /api/v1/classes/:id
func (h *AcademicHandler) GetClass(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	class, err := h.academicSvc.GetClass(c.Request.Context(), id)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, class)
}

// CreateClass 创建班级
// POST /api/v1/classes
func (h *AcademicHandler) CreateClass(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	class, err := h.academicSvc.CreateClass(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.Created(c, class)
}

// UpdateClass 更新班级
// PUT /api/v1/classes/:id
func (h *AcademicHandler) UpdateClass(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	class, err := h.academicSvc.UpdateClass(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, class)
}

// DeleteClass 删除班级
// DELETE /api/v1/classes/:id
func (h *AcademicHandler) DeleteClass(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.academicSvc.DeleteClass(c.Request.Context(), id); err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetLesson 课程详情（含版本号，更新时回传）
// GET /api/v1/lessons/:id
func (h *AcademicHandler) GetLesson(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	lesson, err := h.academicSvc.GetLesson(c.Request.Context(), id)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, lesson)
}

// CreateLesson 创建课程
// POST /api/v1/lessons
func (h *AcademicHandler) CreateLesson(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	lesson, err := h.academicSvc.CreateLesson(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.Created(c, lesson)
}

// UpdateLesson 更新课程（乐观锁）
// PUT /api/v1/lessons/:id
func (h *AcademicHandler) UpdateLesson(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	lesson, err := h.academicSvc.UpdateLesson(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, lesson)
}

// DeleteLesson 删除课程
// DELETE /api/v1/lessons/:id
func (h *AcademicHandler) DeleteLesson(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.academicSvc.DeleteLesson(c.Request.Context(), id); err != nil {
		h.handleAcademicError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleAcademicError 将 Service 层错误映射为 HTTP 响应
func (h *AcademicHandler) handleAcademicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 13001, "科目不存在")
	case errors.Is(err, service.ErrSubjectNameTaken):
		response.Conflict(c, 13002, "科目名称已存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 13003, "班级不存在")
	case errors.Is(err, service.ErrClassNameTaken):
		response.Conflict(c, 13004, "班级名称已存在")
	case errors.Is(err, service.ErrCapacityTooSmall):
		response.BadRequest(c, 13005, "班级容量不能小于现有人数")
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 13006, "课程不存在")
	case errors.Is(err, service.ErrVersionRequired):
		response.BadRequest(c, 13007, "更新课程时必须提供版本号")
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, 13008, "数据已被他人修改，请刷新后重试")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 13009, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 13010, "关联的记录不存在")
	case errors.Is(err, service.ErrInUse):
		response.Conflict(c, 13011, "记录仍被引用，无法删除")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
