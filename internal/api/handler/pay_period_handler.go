package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
)

// PayPeriodHandler 发薪周期 HTTP 处理器
type PayPeriodHandler struct {
	payPeriodSvc service.PayPeriodService
}

// NewPayPeriodHandler 创建 PayPeriodHandler
func NewPayPeriodHandler(payPeriodSvc service.PayPeriodService) *PayPeriodHandler {
	return &PayPeriodHandler{payPeriodSvc: payPeriodSvc}
}

// CreatePayPeriods 按年份批量创建发薪周期
// POST /api/v1/pay-periods
func (h *PayPeriodHandler) CreatePayPeriods(c *gin.Context) {
	var req dto.CreatePayPeriodsRequest
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

	result, err := h.payPeriodSvc.CreatePayPeriods(c.Request.Context(), orgID, &req, callerID)
	if err != nil {
		h.handlePayPeriodError(c, err)
		return
	}

	response.Created(c, result)
}

// ListPayPeriods 获取某年的发薪周期
// GET /api/v1/pay-periods?year=2025
func (h *PayPeriodHandler) ListPayPeriods(c *gin.Context) {
	var req dto.ListPayPeriodsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	periods, err := h.payPeriodSvc.ListPayPeriods(c.Request.Context(), orgID, req.Year)
	if err != nil {
		h.handlePayPeriodError(c, err)
		return
	}

	response.OK(c, gin.H{"list": periods})
}

// ClosePayPeriod 关闭发薪周期
// PUT /api/v1/pay-periods/:id/close
func (h *PayPeriodHandler) ClosePayPeriod(c *gin.Context) {
	id, ok := mustGetIDParam(c, "发薪周期ID")
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

	period, err := h.payPeriodSvc.ClosePayPeriod(c.Request.Context(), orgID, id, callerID)
	if err != nil {
		h.handlePayPeriodError(c, err)
		return
	}

	response.OK(c, period)
}

// handlePayPeriodError 统一处理发薪周期模块业务错误
func (h *PayPeriodHandler) handlePayPeriodError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPayPeriodsExist):
		response.Conflict(c, 15001, "该年度发薪周期已存在")
	case errors.Is(err, service.ErrPayPeriodNotFound):
		response.NotFound(c, 15002, "发薪周期不存在")
	case errors.Is(err, service.ErrPayPeriodClosed):
		response.Conflict(c, 15003, "发薪周期已关闭")
	case errors.Is(err, service.ErrGenerationLocked):
		response.Locked(c, 15004, "发薪周期正在创建中，请稍后重试")
	case handleCommonError(c, err):
	default:
		response.InternalError(c)
	}
}
