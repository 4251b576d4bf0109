package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"school-hub/backend/internal/model"
	"school-hub/backend/pkg/response"
)

var bloodTypes = map[string]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

// RegisterValidators 向 gin 的校验器注册自定义规则，需在路由初始化前调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("sex", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == model.SexMale || s == model.SexFemale
	}); err != nil {
		return err
	}
	return v.RegisterValidation("bloodtype", func(fl validator.FieldLevel) bool {
		return bloodTypes[fl.Field().String()]
	})
}

// bindError 渲染请求体绑定失败；校验错误只返回第一条
func bindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败",
			fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		return
	}
	response.BadRequest(c, 10001, "参数校验失败")
}
