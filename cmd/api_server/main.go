package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"video_sharing_service/internal/api/handlers"
	"video_sharing_service/internal/api/router"
	commentapp "video_sharing_service/internal/comment/app"
	commentrepo "video_sharing_service/internal/comment/repository"
	subapp "video_sharing_service/internal/subscription/app"
	subrepo "video_sharing_service/internal/subscription/repository"
	userapp "video_sharing_service/internal/user/app"
	userdomain "video_sharing_service/internal/user/domain"
	userrepo "video_sharing_service/internal/user/repository"
	videoapp "video_sharing_service/internal/video/app"
	videorepo "video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/config"
	"video_sharing_service/pkg/database"
	"video_sharing_service/pkg/encrypt"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/middlewares"
	"video_sharing_service/pkg/token"
	testtool "video_sharing_service/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

const issuer = "video_sharing_service"

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.APIServer, config.EnvConfig.APIServerLogPath)
	cfg := config.LoadConfig[config.APIServer](config.EnvConfig.APIServer, config.EnvConfig.APIServerYAMLPath)

	token.Configure(cfg.Token.AccessSecret, cfg.Token.RefreshSecret, cfg.Token.AccessTTL, cfg.Token.RefreshTTL)

	ctx := context.Background()

	// MongoDB
	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%d",
		cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	if cfg.Mongo.User == "" {
		mongoURI = fmt.Sprintf("mongodb://%s:%d", cfg.Mongo.Host, cfg.Mongo.Port)
	}
	db, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    mongoURI,
		RetryCount:    cfg.Mongo.RetryCount,
		RetryInterval: time.Duration(cfg.Mongo.RetryInterval) * time.Second,
	}, cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal("connect mongodb failed", zap.Error(err))
	}
	defer db.Close(ctx)

	// MinIO 媒體儲存
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval) * time.Second,
	})
	if err != nil {
		logger.Log.Fatal("connect minio failed", zap.Error(err))
	}

	// Redis session 快取
	masterName, sentinelAddrs := config.GetRedisSetting()
	sessionRepo, err := database.NewRedisRepository[userdomain.UserSession](masterName, sentinelAddrs, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal("connect redis failed", zap.Error(err))
	}

	// Kafka 播放事件，接不上就只寫 log 繼續跑
	var events database.EventWriter
	if len(cfg.Kafka.Brokers) > 0 {
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval) * time.Second,
		})
		if err != nil {
			logger.Log.Warn("connect kafka failed, view events disabled", zap.Error(err))
		} else {
			events = writer
			defer writer.Close()
		}
	}

	// repository
	users := userrepo.NewUserRepository(db.Database)
	videos := videorepo.NewVideoRepository(db.Database)
	comments := commentrepo.NewCommentRepository(db.Database)
	subscriptions := subrepo.NewSubscriptionRepository(db.Database)
	if err := subscriptions.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("create subscription indexes failed", zap.Error(err))
	}

	// usecase
	userUC := userapp.NewUserUseCase(users, minioClient, sessionRepo, issuer, encrypt.HashPassword)
	videoUC := videoapp.NewVideoUseCase(videos, minioClient, events)
	commentUC := commentapp.NewCommentUseCase(comments, videos)
	subscriptionUC := subapp.NewSubscriptionUseCase(subscriptions, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    512 * 1024 * 1024, // 影片上傳
	})

	// access log
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.APIServerLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()
	app.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	authMW := middlewares.JWTAuth(func(ctx context.Context, userID string) (interface{}, error) {
		return userUC.LoadByID(ctx, userID)
	})

	router.RegisterRoutes(app,
		authMW,
		handlers.NewUserHandler(userUC),
		handlers.NewVideoHandler(videoUC),
		handlers.NewCommentHandler(commentUC),
		handlers.NewSubscriptionHandler(subscriptionUC),
	)

	testtool.StartPprof()

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
