package handler

import (
	"errors"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/api/middleware"
	"tubo-go/internal/api/response"
	"tubo-go/internal/infra/payment"
	"tubo-go/internal/service"
	"tubo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// List 套餐目录
// @Summary 套餐目录
// @Description 全部可购套餐，登录用户附带当前套餐状态
// @Tags 套餐
// @Produce json
// @Success 200 {object} response.Response{data=dto.PlanListData} "获取成功"
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	data, err := h.planService.List(currentUserIDPtr(c))
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// GetDetail 购买确认页
// @Summary 购买确认页
// @Description 单个套餐的价格和权益
// @Tags 套餐
// @Produce json
// @Param name path string true "套餐名" Enums(Basic, Pro, VIP)
// @Success 200 {object} response.Response{data=dto.PlanInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "套餐不存在"
// @Router /plans/{name} [get]
func (h *PlanHandler) GetDetail(c *gin.Context) {
	info, err := h.planService.GetDetail(c.Param("name"))
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, "获取成功", info)
}

// Pay 购买套餐
// @Summary 购买套餐
// @Description 用支付令牌购买套餐，成功后立即生效
// @Tags 套餐
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PayRequest true "购买信息"
// @Success 200 {object} response.Response{data=dto.PaymentResult} "购买成功"
// @Failure 402 {object} response.ErrorResponse "扣款失败"
// @Failure 404 {object} response.ErrorResponse "套餐不存在"
// @Router /plans/pay [post]
func (h *PlanHandler) Pay(c *gin.Context) {
	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	result, err := h.planService.Pay(c.Request.Context(), currentUserID, &req)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, "购买成功", result)
}

func handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, payment.ErrChargeDeclined):
		response.PaymentRequired(c, err.Error())
	default:
		logger.Error("Plan operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
