package router

import (
	"video_sharing_service/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes 註冊所有路由
// @title Video Sharing Service API
// @version 1.0
// @description API documentation for Video Sharing Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App,
	authMW fiber.Handler,
	userHandler *handlers.UserHandler,
	videoHandler *handlers.VideoHandler,
	commentHandler *handlers.CommentHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	api := app.Group("/api/v1")

	userRoutes := api.Group("/users")
	userRoutes.Post("/register", userHandler.Register)
	userRoutes.Post("/login", userHandler.Login)
	userRoutes.Post("/refresh-token", userHandler.RefreshToken)

	userRoutes.Use(authMW)
	userRoutes.Post("/logout", userHandler.Logout)
	userRoutes.Post("/change-password", userHandler.ChangePassword)
	userRoutes.Get("/current", userHandler.CurrentUser)
	userRoutes.Patch("/update-account", userHandler.UpdateAccount)
	userRoutes.Patch("/avatar", userHandler.UpdateAvatar)
	userRoutes.Patch("/cover", userHandler.UpdateCover)
	userRoutes.Get("/channel/:username", userHandler.ChannelProfile)
	userRoutes.Get("/watch-history", userHandler.WatchHistory)
	userRoutes.Post("/watch-history", userHandler.AddWatchHistory)

	videoRoutes := api.Group("/video")
	videoRoutes.Use(authMW)
	videoRoutes.Get("/", videoHandler.List)
	videoRoutes.Post("/", videoHandler.Publish)
	videoRoutes.Get("/my-videos", videoHandler.MyVideos)
	// toggle 要註冊在 /:videoId 之前，不然會被參數路由吃掉
	videoRoutes.Patch("/toggle/publish/:videoId", videoHandler.TogglePublish)
	videoRoutes.Get("/:videoId", videoHandler.Get)
	videoRoutes.Patch("/:videoId", videoHandler.Update)
	videoRoutes.Delete("/:videoId", videoHandler.Delete)
	videoRoutes.Patch("/:videoId/views", videoHandler.IncrementViews)

	commentRoutes := api.Group("/comments")
	commentRoutes.Use(authMW)
	commentRoutes.Get("/:videoId", commentHandler.List)
	commentRoutes.Post("/:videoId", commentHandler.Add)
	commentRoutes.Patch("/:commentId", commentHandler.Update)
	commentRoutes.Delete("/:commentId", commentHandler.Delete)

	subscriptionRoutes := api.Group("/subscription")
	subscriptionRoutes.Use(authMW)
	subscriptionRoutes.Post("/:channelId", subscriptionHandler.Toggle)
	subscriptionRoutes.Get("/channel/:channelId", subscriptionHandler.Subscribers)
	subscriptionRoutes.Get("/user/:subscriberId", subscriptionHandler.SubscribedChannels)
}
