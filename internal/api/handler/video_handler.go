package handler

import (
	"errors"
	"strconv"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/api/middleware"
	"tubo-go/internal/api/response"
	"tubo-go/internal/model"
	"tubo-go/internal/service"
	"tubo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 视频最大 500MB
const maxVideoSize = int64(500 * 1024 * 1024)

type VideoHandler struct {
	videoService      *service.VideoService
	engagementService *service.EngagementService
}

func NewVideoHandler(videoService *service.VideoService, engagementService *service.EngagementService) *VideoHandler {
	return &VideoHandler{videoService: videoService, engagementService: engagementService}
}

// Upload 上传视频
// @Summary 上传视频
// @Description 上传 mp4/mp3 文件到自己的频道
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "简介"
// @Param channel_id formData int true "频道ID"
// @Param video_file formData file true "视频文件"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "上传成功"
// @Failure 400 {object} response.ErrorResponse "文件格式或参数无效"
// @Router /videos/upload [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	file, err := c.FormFile("video_file")
	if err != nil {
		response.BadRequest(c, "请上传视频文件")
		return
	}
	if file.Size == 0 || file.Size > maxVideoSize {
		response.BadRequest(c, "文件大小无效（不能为空，最大 500MB）")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer f.Close()

	info, err := h.videoService.Upload(currentUserID, &req, file.Filename, f, file.Size)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "视频上传成功", info)
}

// GetFeed 首页信息流
// @Summary 首页信息流
// @Description 按上传时间倒序的视频列表，公开访问
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos/feed [get]
func (h *VideoHandler) GetFeed(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.videoService.Feed(page, pageSize)
	if err != nil {
		logger.Error("Get video feed failed", zap.Error(err))
		response.InternalError(c, "获取视频流失败")
		return
	}

	response.OK(c, "获取成功", data)
}

// GetDetail 播放页
// @Summary 播放页
// @Description 视频详情、实时点赞点踩数、评论，匿名可看
// @Tags 视频
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoDetailData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	data, err := h.videoService.GetDetail(videoID, currentUserIDPtr(c))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// Delete 删除视频
// @Summary 删除视频
// @Description 删除视频，上传者本人或管理员可用
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(currentUserID, videoID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// Like 点赞
// @Summary 点赞
// @Description 点赞视频，重复点赞会撤销，已点踩则翻转
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.ReactionData} "操作成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/like [post]
func (h *VideoHandler) Like(c *gin.Context) {
	h.react(c, model.ReactionLike)
}

// Dislike 点踩
// @Summary 点踩
// @Description 点踩视频，重复点踩会撤销，已点赞则翻转
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.ReactionData} "操作成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/dislike [post]
func (h *VideoHandler) Dislike(c *gin.Context) {
	h.react(c, model.ReactionDislike)
}

func (h *VideoHandler) react(c *gin.Context, kind string) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.engagementService.React(currentUserID, videoID, kind)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "操作成功", data)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNoPermission),
		errors.Is(err, service.ErrNotChannelOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrBadVideoExtension),
		errors.Is(err, service.ErrBadReaction):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// currentUserIDPtr 可选认证路由用：未登录返回 nil
func currentUserIDPtr(c *gin.Context) *int64 {
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		return &userID
	}
	return nil
}
