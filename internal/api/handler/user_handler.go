package handler

import (
	"errors"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/api/middleware"
	"tubo-go/internal/api/response"
	"tubo-go/internal/service"
	"tubo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 头像最大 5MB
const maxAvatarSize = int64(5 * 1024 * 1024)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile 个人主页
// @Summary 个人主页
// @Description 按用户名获取用户资料、频道、视频和粉丝总数
// @Tags 用户
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.UserProfileData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	data, err := h.userService.GetProfile(username)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// UpdateProfile 更新资料
// @Summary 更新资料
// @Description 更新当前用户的昵称和简介
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.UpdateProfile(currentUserID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新成功", info)
}

// UploadAvatar 上传头像
// @Summary 上传头像
// @Description 上传 jpg/png 头像，替换当前头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像文件"
// @Success 200 {object} response.Response{data=dto.AvatarData} "上传成功"
// @Failure 400 {object} response.ErrorResponse "文件格式或大小无效"
// @Router /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "请上传头像文件")
		return
	}
	if file.Size == 0 || file.Size > maxAvatarSize {
		response.BadRequest(c, "文件大小无效（不能为空，最大 5MB）")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer f.Close()

	data, err := h.userService.UploadAvatar(currentUserID, file.Filename, f, file.Size)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "头像更新成功", data)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrBadImageExtension):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
