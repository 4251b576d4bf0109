package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// ListHandler 通用列表页处理器
type ListHandler struct {
	listSvc service.ListService
}

// NewListHandler 创建 ListHandler
func NewListHandler(listSvc service.ListService) *ListHandler {
	return &ListHandler{listSvc: listSvc}
}

// List 按实体返回当前调用方可见的一页记录
// 查询参数：page、search 以及各实体支持的过滤键（classId、teacherId 等）
// GET /api/v1/list/:entity
func (h *ListHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	entity, ok := listquery.ParseEntity(c.Param("entity"))
	if !ok {
		response.NotFound(c, 17001, "列表不存在")
		return
	}

	params := listquery.ParamsFromValues(c.Request.URL.Query())
	result, err := h.listSvc.List(c.Request.Context(), entity, params, actor)
	if err != nil {
		handleListError(c, err)
		return
	}

	response.OKPage(c, result.Items, result.Total, result.Window.Page, result.Window.Size)
}

func handleListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownList), errors.Is(err, service.ErrUnknownExport):
		response.NotFound(c, 17001, "列表不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	case errors.Is(err, service.ErrListUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 17002, "加载列表失败，请稍后重试")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 17003, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
