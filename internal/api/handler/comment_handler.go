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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
// @Summary 发表评论
// @Description 在指定视频下发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param request body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "发表成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Create(currentUserID, videoID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "评论发表成功", info)
}

// List 评论列表
// @Summary 评论列表
// @Description 指定视频下的全部评论，公开访问
// @Tags 评论
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=[]dto.CommentInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	infos, err := h.commentService.ListByVideo(videoID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取成功", infos)
}

// Delete 删除评论
// @Summary 删除评论
// @Description 删除评论，作者本人、版主或管理员可用
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(currentUserID, commentID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
