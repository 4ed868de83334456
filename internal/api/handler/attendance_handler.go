package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
)

// AttendanceHandler 兴趣课考勤 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MarkAttendance 登记课次考勤
// PUT /api/v1/sessions/:id/attendance
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	sessionID, ok := mustGetIDParam(c, "课次ID")
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
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

	records, err := h.attendanceSvc.MarkAttendance(c.Request.Context(), orgID, sessionID, &req, callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// ListRollovers 获取开课下的补课额度
// GET /api/v1/offerings/:id/rollovers
func (h *AttendanceHandler) ListRollovers(c *gin.Context) {
	offeringID, ok := mustGetIDParam(c, "开课ID")
	if !ok {
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	list, err := h.attendanceSvc.ListRollovers(c.Request.Context(), orgID, offeringID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "课次不存在")
	case errors.Is(err, service.ErrOfferingNotFound):
		response.NotFound(c, 12001, "开课不存在")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 14001, "选课记录不存在")
	case handleCommonError(c, err):
	default:
		response.InternalError(c)
	}
}
