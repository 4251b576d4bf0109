package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// PeopleHandler 人员模块（教师 / 学生 / 家长）HTTP 处理器
type PeopleHandler struct {
	peopleSvc service.PeopleService
}

// NewPeopleHandler 创建 PeopleHandler
func NewPeopleHandler(peopleSvc service.PeopleService) *PeopleHandler {
	return &PeopleHandler{peopleSvc: peopleSvc}
}

// ── 教师 ──

// GetTeacher 教师详情
// GET /api/v1/teachers/:id
func (h *PeopleHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.peopleSvc.GetTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, teacher)
}

// CreateTeacher 创建教师
// POST /api/v1/teachers
func (h *PeopleHandler) CreateTeacher(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	teacher, err := h.peopleSvc.CreateTeacher(c.Request.Context(), actor, &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateTeacher 更新教师
// PUT /api/v1/teachers/:id
func (h *PeopleHandler) UpdateTeacher(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	teacher, err := h.peopleSvc.UpdateTeacher(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, teacher)
}

// DeleteTeacher 删除教师
// DELETE /api/v1/teachers/:id
func (h *PeopleHandler) DeleteTeacher(c *gin.Context) {
	if err := h.peopleSvc.DeleteTeacher(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 学生 ──

// GetStudent 学生详情
// GET /api/v1/students/:id
func (h *PeopleHandler) GetStudent(c *gin.Context) {
	student, err := h.peopleSvc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, student)
}

// CreateStudent 创建学生
// POST /api/v1/students
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	student, err := h.peopleSvc.CreateStudent(c.Request.Context(), actor, &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, student)
}

// UpdateStudent 更新学生
// PUT /api/v1/students/:id
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	student, err := h.peopleSvc.UpdateStudent(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, student)
}

// DeleteStudent 删除学生
// DELETE /api/v1/students/:id
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	if err := h.peopleSvc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 家长 ──

// GetParent 家长详情
// GET /api/v1/parents/:id
func (h *PeopleHandler) GetParent(c *gin.Context) {
	parent, err := h.peopleSvc.GetParent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, parent)
}

// CreateParent 创建家长
// POST /api/v1/parents
func (h *PeopleHandler) CreateParent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	parent, err := h.peopleSvc.CreateParent(c.Request.Context(), actor, &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, parent)
}

// UpdateParent 更新家长
// PUT /api/v1/parents/:id
func (h *PeopleHandler) UpdateParent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	parent, err := h.peopleSvc.UpdateParent(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, parent)
}

// DeleteParent 删除家长
// DELETE /api/v1/parents/:id
func (h *PeopleHandler) DeleteParent(c *gin.Context) {
	if err := h.peopleSvc.DeleteParent(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// handlePeopleError 将 Service 层错误映射为 HTTP 响应
func (h *PeopleHandler) handlePeopleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12001, "教师不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12002, "学生不存在")
	case errors.Is(err, service.ErrParentNotFound):
		response.NotFound(c, 12003, "家长不存在")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 12004, "用户名已存在")
	case errors.Is(err, service.ErrContactTaken):
		response.Conflict(c, 12005, "邮箱或手机号已被使用")
	case errors.Is(err, service.ErrPasswordRequired):
		response.BadRequest(c, 12006, "创建账号时必须设置密码")
	case errors.Is(err, service.ErrInvalidBirthday):
		response.BadRequest(c, 12007, "出生日期格式错误")
	case errors.Is(err, service.ErrClassFull):
		response.Conflict(c, 12008, "班级人数已满")
	case errors.Is(err, service.ErrClassNotFound):
		response.BadRequest(c, 12009, "班级不存在")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 12010, "关联的记录不存在")
	case errors.Is(err, service.ErrInUse):
		response.Conflict(c, 12011, "记录仍被引用，无法删除")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
