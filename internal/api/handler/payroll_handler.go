package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
)

// PayrollHandler 课时费 HTTP 处理器
type PayrollHandler struct {
	payrollSvc service.PayrollService
}

// NewPayrollHandler 创建 PayrollHandler
func NewPayrollHandler(payrollSvc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollSvc: payrollSvc}
}

// GetTeacherPay 计算教师课时费
// GET /api/v1/payroll/teachers/:id?start_date=2025-09-01&end_date=2025-09-30
// 管理员可查询任意教师，教师只能查询自己
func (h *PayrollHandler) GetTeacherPay(c *gin.Context) {
	teacherID, ok := mustGetIDParam(c, "教师ID")
	if !ok {
		return
	}

	var req dto.TeacherPayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "start_date 与 end_date 不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	if role != model.RoleAdmin && callerID != teacherID {
		response.Forbidden(c, 10003, "无权限访问")
		return
	}

	result, err := h.payrollSvc.CalculateTeacherPay(c.Request.Context(), orgID, teacherID, req.StartDate, req.EndDate)
	if err != nil {
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
