package router

import (
	"tubo-go/internal/api/handler"
	"tubo-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	channelHandler *handler.ChannelHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	planHandler *handler.PlanHandler,
	searchHandler *handler.SearchHandler,
	adminHandler *handler.AdminHandler,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.GET("/me", authHandler.Me)
		}
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		// 个人主页公开可看
		users.GET("/:username", userHandler.GetProfile)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.PUT("/me", userHandler.UpdateProfile)
			usersAuth.POST("/me/avatar", userHandler.UploadAvatar)
		}
	}

	// --- 频道模块 ---
	channels := v1.Group("/channels")
	{
		// 频道页匿名可看，登录后附带关注状态
		channels.GET("/:id", middleware.AuthOptional(), channelHandler.GetPage)

		channelsAuth := channels.Group("", middleware.AuthRequired())
		{
			channelsAuth.POST("", channelHandler.Create)
			channelsAuth.POST("/:id/follow", channelHandler.Follow)
			channelsAuth.DELETE("/:id/follow", channelHandler.Unfollow)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("/feed", videoHandler.GetFeed)
		videos.GET("/:id", middleware.AuthOptional(), videoHandler.GetDetail)
		videos.GET("/:id/comments", commentHandler.List)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("/upload", videoHandler.Upload)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.POST("/:id/like", videoHandler.Like)
			videosAuth.POST("/:id/dislike", videoHandler.Dislike)
			videosAuth.POST("/:id/comments", commentHandler.Create)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// --- 搜索模块 ---
	v1.GET("/search", searchHandler.Search)

	// --- 套餐模块 ---
	plans := v1.Group("/plans")
	{
		plans.GET("", middleware.AuthOptional(), planHandler.List)
		plans.GET("/:name", planHandler.GetDetail)

		plansAuth := plans.Group("", middleware.AuthRequired())
		{
			plansAuth.POST("/pay", planHandler.Pay)
		}
	}

	// --- 管理后台 ---
	admin := v1.Group("/admin", middleware.AuthRequired(), adminMiddleware)
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.PUT("/users/:id/moderator", adminHandler.SetModerator)
		admin.POST("/users/:id/followers/add", adminHandler.AddUserFollowers)
		admin.POST("/users/:id/followers/remove", adminHandler.RemoveUserFollowers)

		admin.GET("/channels", adminHandler.ListChannels)
		admin.DELETE("/channels/:id", adminHandler.DeleteChannel)
		admin.POST("/channels/:id/followers/add", adminHandler.AddChannelFollowers)
		admin.POST("/channels/:id/followers/remove", adminHandler.RemoveChannelFollowers)

		admin.DELETE("/videos/:id", adminHandler.DeleteVideo)
		admin.DELETE("/comments/:id", adminHandler.DeleteComment)
	}
}
