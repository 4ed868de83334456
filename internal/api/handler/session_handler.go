package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
)

// SessionHandler 课次模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

type generateFunc func(ctx context.Context, organizationID, offeringID, callerID string) (*dto.GenerateSessionsResponse, error)

// GenerateSessions 按开课规则生成课次
// POST /api/v1/offerings/:id/sessions/generate
func (h *SessionHandler) GenerateSessions(c *gin.Context) {
	h.generate(c, h.sessionSvc.GenerateSessions)
}

// RegenerateSessions 删除未来未变动的课次并按当前规则重建
// POST /api/v1/offerings/:id/sessions/regenerate
func (h *SessionHandler) RegenerateSessions(c *gin.Context) {
	h.generate(c, h.sessionSvc.RegenerateSessions)
}

func (h *SessionHandler) generate(c *gin.Context, fn generateFunc) {
	offeringID, ok := mustGetIDParam(c, "开课ID")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), orgID, offeringID, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, result)
}

// ListSessions 获取开课的课次列表
// GET /api/v1/offerings/:id/sessions?from=2025-09-01&to=2025-12-31
func (h *SessionHandler) ListSessions(c *gin.Context) {
	offeringID, ok := mustGetIDParam(c, "开课ID")
	if !ok {
		return
	}

	var req dto.ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionSvc.ListSessions(c.Request.Context(), orgID, offeringID, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// CancelSession 取消课次
// PUT /api/v1/sessions/:id/cancel
func (h *SessionHandler) CancelSession(c *gin.Context) {
	sessionID, ok := mustGetIDParam(c, "课次ID")
	if !ok {
		return
	}

	var req dto.CancelSessionRequest
	// 请求体可选
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.CancelSession(c.Request.Context(), orgID, sessionID, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// RescheduleSession 调课
// PUT /api/v1/sessions/:id/reschedule
func (h *SessionHandler) RescheduleSession(c *gin.Context) {
	sessionID, ok := mustGetIDParam(c, "课次ID")
	if !ok {
		return
	}

	var req dto.RescheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.RescheduleSession(c.Request.Context(), orgID, sessionID, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// ExportCalendar 导出开课课表（iCalendar）
// GET /api/v1/offerings/:id/calendar
func (h *SessionHandler) ExportCalendar(c *gin.Context) {
	offeringID, ok := mustGetIDParam(c, "开课ID")
	if !ok {
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	data, filename, err := h.sessionSvc.ExportCalendar(c.Request.Context(), orgID, offeringID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Attachment(c, filename, "text/calendar; charset=utf-8", data)
}

// handleSessionError 统一处理课次模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOfferingNotFound):
		response.NotFound(c, 12001, "开课不存在")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "课次不存在")
	case errors.Is(err, service.ErrSessionsExist):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrGenerationLocked):
		response.Locked(c, 13003, "课次正在生成中，请稍后重试")
	case errors.Is(err, service.ErrSessionImmutable):
		response.Conflict(c, 13004, "已完成的课次不可修改")
	case errors.Is(err, service.ErrOfferingInactive):
		response.Conflict(c, 13005, "开课已停用")
	case handleCommonError(c, err):
	default:
		response.InternalError(c)
	}
}
