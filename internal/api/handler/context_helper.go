package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/service"
	"school-hub/backend/pkg/jwt"
	"school-hub/backend/pkg/response"
)

// 认证中间件写入 gin.Context 的键
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetActor 提取当前调用方；角色无法识别时得到 RoleUnknown，由下游按最低权限处理
func MustGetActor(c *gin.Context) (service.Actor, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	role, _ := c.Get(CtxRole)
	s, _ := role.(string)
	return service.Actor{ID: id, Role: listquery.ParseRole(s)}, true
}

// MustGetClaims 提取完整的身份声明（注销时需要 jti 与过期时间）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// parseIntID 解析整数路径参数，失败时写入 400 响应
func parseIntID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.BadRequest(c, 10001, "ID 格式错误")
		return 0, false
	}
	return id, true
}
