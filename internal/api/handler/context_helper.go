package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

// MustGetOrganizationID 从 Gin 上下文中安全提取 organization_id。
// 所有业务查询都按组织隔离，缺失时视为未认证。
func MustGetOrganizationID(c *gin.Context) (string, bool) {
	return mustGetString(c, "organization_id")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
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

// mustGetIDParam 读取路径参数 :id 并校验为 UUID，返回规范化的小写形式。
// 非法 ID 在此处返回 400，不再下发到数据库。
func mustGetIDParam(c *gin.Context, label string) (string, bool) {
	raw := c.Param("id")
	if raw == "" {
		response.BadRequest(c, 10001, label+"不能为空")
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, 10001, label+"格式无效")
		return "", false
	}
	return id.String(), true
}

// handleCommonError 处理各模块共用的基础错误，已写入响应时返回 true
func handleCommonError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrPayrollLookup):
		details := strings.TrimPrefix(err.Error(), service.ErrPayrollLookup.Error()+": ")
		response.ErrorWithDetails(c, http.StatusBadGateway, 16001, "课时费数据查询失败", details)
	default:
		return false
	}
	return true
}
