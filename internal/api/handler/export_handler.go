package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
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

// ExportPayroll 导出教师课时费明细
// GET /api/v1/export/payroll?teacher_id=xxx&start_date=2025-09-01&end_date=2025-09-30
func (h *ExportHandler) ExportPayroll(c *gin.Context) {
	var req dto.ExportPayrollRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "teacher_id、start_date、end_date 不能为空")
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportPayroll(c.Request.Context(), orgID, &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	case handleCommonError(c, err):
	default:
		response.InternalError(c)
	}
}
