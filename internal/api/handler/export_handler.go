package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Export 按列表页相同的过滤条件导出 Excel，不分页
// GET /api/v1/export/:entity?search=xxx&classId=1
func (h *ExportHandler) Export(c *gin.Context) {
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
	buf, filename, err := h.exportSvc.Export(c.Request.Context(), entity, params, actor)
	if err != nil {
		handleListError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
