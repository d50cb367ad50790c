package handler

import (
	"errors"
	"strconv"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/api/middleware"
	"tubo-go/internal/api/response"
	"tubo-go/internal/service"
	"tubo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChannelHandler struct {
	channelService *service.ChannelService
	followService  *service.FollowService
}

func NewChannelHandler(channelService *service.ChannelService, followService *service.FollowService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService, followService: followService}
}

// Create 创建频道
// @Summary 创建频道
// @Description 创建新频道，仅管理员可用
// @Tags 频道
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChannelCreateRequest true "频道信息"
// @Success 201 {object} response.Response{data=dto.ChannelInfo} "创建成功"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Router /channels [post]
func (h *ChannelHandler) Create(c *gin.Context) {
	var req dto.ChannelCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.channelService.Create(currentUserID, &req)
	if err != nil {
		handleChannelError(c, err)
		return
	}

	response.Created(c, "频道创建成功", info)
}

// GetPage 频道主页
// @Summary 频道主页
// @Description 获取频道信息、视频列表和当前访客的关注状态
// @Tags 频道
// @Produce json
// @Param id path int true "频道ID"
// @Success 200 {object} response.Response{data=dto.ChannelPageData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id} [get]
func (h *ChannelHandler) GetPage(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	data, err := h.channelService.GetPage(channelID, currentUserIDPtr(c))
	if err != nil {
		handleChannelError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// Follow 关注频道
// @Summary 关注频道
// @Description 关注指定频道，重复关注会被拒绝
// @Tags 频道
// @Produce json
// @Security BearerAuth
// @Param id path int true "频道ID"
// @Success 200 {object} response.Response{data=dto.FollowData} "关注成功"
// @Failure 400 {object} response.ErrorResponse "已经关注过"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id}/follow [post]
func (h *ChannelHandler) Follow(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.followService.Follow(currentUserID, channelID)
	if err != nil {
		handleChannelError(c, err)
		return
	}

	response.OK(c, "关注成功", data)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Description 取消对指定频道的关注
// @Tags 频道
// @Produce json
// @Security BearerAuth
// @Param id path int true "频道ID"
// @Success 200 {object} response.Response{data=dto.FollowData} "取消成功"
// @Failure 400 {object} response.ErrorResponse "尚未关注"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{id}/follow [delete]
func (h *ChannelHandler) Unfollow(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.followService.Unfollow(currentUserID, channelID)
	if err != nil {
		handleChannelError(c, err)
		return
	}

	response.OK(c, "取消关注成功", data)
}

func handleChannelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAdminOnly):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Channel operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
