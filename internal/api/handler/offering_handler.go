package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/response"
)

// OfferingHandler 开课模块 HTTP 处理器
type OfferingHandler struct {
	offeringSvc service.OfferingService
}

// NewOfferingHandler 创建 OfferingHandler
func NewOfferingHandler(offeringSvc service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringSvc: offeringSvc}
}

// ListOfferings 获取开课列表
// GET /api/v1/offerings?teacher_id=xxx
func (h *OfferingHandler) ListOfferings(c *gin.Context) {
	var req dto.ListOfferingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	offerings, err := h.offeringSvc.List(c.Request.Context(), orgID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": offerings})
}

// GetOffering 获取开课详情
// GET /api/v1/offerings/:id
func (h *OfferingHandler) GetOffering(c *gin.Context) {
	id, ok := mustGetIDParam(c, "开课ID")
	if !ok {
		return
	}

	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	offering, err := h.offeringSvc.GetByID(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleOfferingError(c, err)
		return
	}

	response.OK(c, offering)
}

// handleOfferingError 统一处理开课模块业务错误
func (h *OfferingHandler) handleOfferingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOfferingNotFound):
		response.NotFound(c, 12001, "开课不存在")
	default:
		response.InternalError(c)
	}
}
