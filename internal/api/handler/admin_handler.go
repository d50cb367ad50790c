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

// AdminHandler 管理后台接口，路由层已套 AdminRequired 中间件
type AdminHandler struct {
	adminService   *service.AdminService
	videoService   *service.VideoService
	commentService *service.CommentService
}

func NewAdminHandler(
	adminService *service.AdminService,
	videoService *service.VideoService,
	commentService *service.CommentService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		videoService:   videoService,
		commentService: commentService,
	}
}

// ListUsers 用户列表
// @Summary 用户列表
// @Description 分页用户列表，支持用户名模糊筛选
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param username query string false "用户名筛选"
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var username *string
	if v := c.Query("username"); v != "" {
		username = &v
	}

	data, err := h.adminService.ListUsers(page, pageSize, username)
	if err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// ListChannels 频道列表
// @Summary 频道列表
// @Description 分页频道列表，支持名称模糊筛选
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param name query string false "名称筛选"
// @Success 200 {object} response.Response{data=dto.ChannelListData} "获取成功"
// @Router /admin/channels [get]
func (h *AdminHandler) ListChannels(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var name *string
	if v := c.Query("name"); v != "" {
		name = &v
	}

	data, err := h.adminService.ListChannels(page, pageSize, name)
	if err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// DeleteUser 删除用户
// @Summary 删除用户
// @Description 删除用户及其频道、视频、评论、表态、关注
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	if err := h.adminService.DeleteUser(userID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "用户删除成功", nil)
}

// DeleteChannel 删除频道
// @Summary 删除频道
// @Description 删除频道及其视频、评论、表态、关注
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param id path int true "频道ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /admin/channels/{id} [delete]
func (h *AdminHandler) DeleteChannel(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	if err := h.adminService.DeleteChannel(channelID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "频道删除成功", nil)
}

// DeleteVideo 删除视频
// @Summary 删除视频
// @Description 管理员删除任意视频
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /admin/videos/{id} [delete]
func (h *AdminHandler) DeleteVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(currentUserID, videoID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "视频删除成功", nil)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Description 管理员删除任意评论
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /admin/comments/{id} [delete]
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(currentUserID, commentID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "评论删除成功", nil)
}

// SetModerator 设置版主
// @Summary 设置版主
// @Description 授予或撤销用户的版主身份
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.ModeratorUpdateRequest true "版主标识"
// @Success 200 {object} response.Response{data=dto.UserInfo} "设置成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /admin/users/{id}/moderator [put]
func (h *AdminHandler) SetModerator(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.ModeratorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.adminService.SetModerator(userID, *req.IsModerator)
	if err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "设置成功", info)
}

// AddChannelFollowers 频道加粉
// @Summary 频道加粉
// @Description 给单个频道批量增加粉丝数
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "频道ID"
// @Param request body dto.FollowerAdjustRequest true "粉丝数量"
// @Success 200 {object} response.Response{data=dto.ChannelInfo} "调整成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /admin/channels/{id}/followers/add [post]
func (h *AdminHandler) AddChannelFollowers(c *gin.Context) {
	h.adjustChannelFollowers(c, h.adminService.AddChannelFollowers)
}

// RemoveChannelFollowers 频道减粉
// @Summary 频道减粉
// @Description 给单个频道批量减少粉丝数，减到零为止
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "频道ID"
// @Param request body dto.FollowerAdjustRequest true "粉丝数量"
// @Success 200 {object} response.Response{data=dto.ChannelInfo} "调整成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /admin/channels/{id}/followers/remove [post]
func (h *AdminHandler) RemoveChannelFollowers(c *gin.Context) {
	h.adjustChannelFollowers(c, h.adminService.RemoveChannelFollowers)
}

func (h *AdminHandler) adjustChannelFollowers(c *gin.Context, adjust func(int64, int64) (*dto.ChannelInfo, error)) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	var req dto.FollowerAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := adjust(channelID, req.Amount)
	if err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "调整成功", info)
}

// AddUserFollowers 用户全频道加粉
// @Summary 用户全频道加粉
// @Description 给某用户的每个频道批量增加粉丝数
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.FollowerAdjustRequest true "粉丝数量"
// @Success 200 {object} response.Response "调整成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /admin/users/{id}/followers/add [post]
func (h *AdminHandler) AddUserFollowers(c *gin.Context) {
	h.adjustUserFollowers(c, h.adminService.AddUserFollowers)
}

// RemoveUserFollowers 用户全频道减粉
// @Summary 用户全频道减粉
// @Description 给某用户的每个频道批量减少粉丝数，每个频道减到零为止
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.FollowerAdjustRequest true "粉丝数量"
// @Success 200 {object} response.Response "调整成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /admin/users/{id}/followers/remove [post]
func (h *AdminHandler) RemoveUserFollowers(c *gin.Context) {
	h.adjustUserFollowers(c, h.adminService.RemoveUserFollowers)
}

func (h *AdminHandler) adjustUserFollowers(c *gin.Context, adjust func(int64, int64) error) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.FollowerAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	if err := adjust(userID, req.Amount); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "调整成功", nil)
}

func handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Admin operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
