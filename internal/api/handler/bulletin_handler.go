package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// BulletinHandler 活动与公告 HTTP 处理器
type BulletinHandler struct {
	bulletinSvc service.BulletinService
}

// NewBulletinHandler 创建 BulletinHandler
func NewBulletinHandler(bulletinSvc service.BulletinService) *BulletinHandler {
	return &BulletinHandler{bulletinSvc: bulletinSvc}
}

// CreateEvent 创建活动
// POST /api/v1/events
func (h *BulletinHandler) CreateEvent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	event, err := h.bulletinSvc.CreateEvent(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleBulletinError(c, err)
		return
	}
	response.Created(c, event)
}

// UpdateEvent 更新活动
// PUT /api/v1/events/:id
func (h *BulletinHandler) UpdateEvent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	event, err := h.bulletinSvc.UpdateEvent(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleBulletinError(c, err)
		return
	}
	response.OK(c, event)
}

// DeleteEvent 删除活动
// DELETE /api/v1/events/:id
func (h *BulletinHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.bulletinSvc.DeleteEvent(c.Request.Context(), id); err != nil {
		h.handleBulletinError(c, err)
		return
	}
	response.OK(c, nil)
}

// CreateAnnouncement 创建公告
// POST /api/v1/announcements
func (h *BulletinHandler) CreateAnnouncement(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	announcement, err := h.bulletinSvc.CreateAnnouncement(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleBulletinError(c, err)
		return
	}
	response.Created(c, announcement)
}

// UpdateAnnouncement 更新公告
// PUT /api/v1/announcements/:id
func (h *BulletinHandler) UpdateAnnouncement(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	announcement, err := h.bulletinSvc.UpdateAnnouncement(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleBulletinError(c, err)
		return
	}
	response.OK(c, announcement)
}

// DeleteAnnouncement 删除公告
// DELETE /api/v1/announcements/:id
func (h *BulletinHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	if err := h.bulletinSvc.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		h.handleBulletinError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *BulletinHandler) handleBulletinError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 15001, "活动不存在")
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 15002, "公告不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15003, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 15004, "班级不存在")
	default:
		response.InternalError(c)
	}
}
