package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/response"
)

// FormHandler 表单关联数据（下拉选项）
type FormHandler struct {
	formSvc service.FormService
}

// NewFormHandler 创建 FormHandler
func NewFormHandler(formSvc service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// Related 表单所需的关联数据
// GET /api/v1/forms/:table/related
func (h *FormHandler) Related(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	data, err := h.formSvc.Related(c.Request.Context(), c.Param("table"), actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownForm):
			response.NotFound(c, 18001, "表单类型不存在")
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "无权限访问")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, data)
}
