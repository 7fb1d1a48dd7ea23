package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"session-tracker/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
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

// IsAdmin 读取认证中间件注入的管理员标记，缺失视为非管理员
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// PathUUID 读取路径中的 UUID 参数，只接受标准 36 位格式。
// 不合法的 ID 不可能对应任何记录，直接按不存在写入 404；调用方应在 ok=false 时直接 return。
func PathUUID(c *gin.Context, key string, notFoundCode int, notFoundMsg string) (string, bool) {
	id := c.Param(key)
	if len(id) != 36 {
		response.NotFound(c, notFoundCode, notFoundMsg)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(c, notFoundCode, notFoundMsg)
		return "", false
	}
	return id, true
}
