package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// CalendarHandler 日历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// scheduleTarget 课表对象：type 为 teacherId 或 classId，id 为对应主键
func scheduleTarget(c *gin.Context) (string, string) {
	return c.Query("type"), c.Query("id")
}

// WeekLessons 本周课表
// GET /api/v1/calendar/lessons?type=teacherId&id=xxx
func (h *CalendarHandler) WeekLessons(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	kind, id := scheduleTarget(c)
	events, err := h.calendarSvc.WeekLessons(c.Request.Context(), actor, kind, id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, events)
}

// WeekICS 本周课表（iCalendar 订阅格式）
// GET /api/v1/calendar/lessons.ics?type=teacherId&id=xxx
func (h *CalendarHandler) WeekICS(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	kind, id := scheduleTarget(c)
	body, err := h.calendarSvc.WeekICS(c.Request.Context(), actor, kind, id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=lessons.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// Children 家长查看孩子的本周课表
// GET /api/v1/calendar/children
func (h *CalendarHandler) Children(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	children, err := h.calendarSvc.Children(c.Request.Context(), actor)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, children)
}

// EventsOn 指定日期的活动
// GET /api/v1/calendar/events?date=2024-05-17
func (h *CalendarHandler) EventsOn(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	events, err := h.calendarSvc.EventsOn(c.Request.Context(), actor, c.Query("date"))
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, events)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScheduleTarget):
		response.BadRequest(c, 16001, "type 必须为 teacherId 或 classId，且 id 有效")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 16002, "无权查看该课表")
	default:
		response.InternalError(c)
	}
}
