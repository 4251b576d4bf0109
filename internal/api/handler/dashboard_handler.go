package handler

import (
	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// DashboardHandler 首页统计卡片
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Counts 各类人员总数
// GET /api/v1/dashboard/counts
func (h *DashboardHandler) Counts(c *gin.Context) {
	result, err := h.dashboardSvc.Counts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// StudentsBySex 学生性别分布
// GET /api/v1/dashboard/students-by-sex
func (h *DashboardHandler) StudentsBySex(c *gin.Context) {
	result, err := h.dashboardSvc.StudentsBySex(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Attendance 本周出勤统计
// GET /api/v1/dashboard/attendance
func (h *DashboardHandler) Attendance(c *gin.Context) {
	result, err := h.dashboardSvc.Attendance(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// LatestAnnouncements 最新公告
// GET /api/v1/dashboard/announcements
func (h *DashboardHandler) LatestAnnouncements(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.LatestAnnouncements(c.Request.Context(), actor)
	if err != nil {
		handleListError(c, err)
		return
	}
	response.OK(c, result)
}
