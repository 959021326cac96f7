package main

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yatube-app/yatube/config"
	"github.com/yatube-app/yatube/internal/cache"
	"github.com/yatube-app/yatube/internal/handlers"
	"github.com/yatube-app/yatube/internal/media"
	"github.com/yatube-app/yatube/internal/repositories"
	"github.com/yatube-app/yatube/internal/routers"
	"github.com/yatube-app/yatube/internal/services"
	"github.com/yatube-app/yatube/internal/storage"
	"github.com/yatube-app/yatube/pkg/jwt"
	"github.com/yatube-app/yatube/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	var db *gorm.DB
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = storage.InitSQLite(cfg.SQLite.Path)
	default:
		dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
		db, err = storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	}
	if err != nil {
		zapLogger.Fatal("failed to init database", zap.Error(err))
	}

	redisClient, err := storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		zapLogger.Fatal("failed to init redis", zap.Error(err))
	}

	mediaStore, err := media.NewStore(cfg.Media.Root)
	if err != nil {
		zapLogger.Fatal("failed to init media store", zap.Error(err))
	}

	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	pageCache := cache.NewPageCache(redisClient, zapLogger, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	followRepo := repositories.NewFollowRepository(db)

	authService := services.NewAuthService(userRepo, tokenManager)
	feedService := services.NewFeedService(postRepo, groupRepo, userRepo, followRepo)
	postService := services.NewPostService(postRepo, groupRepo, commentRepo, mediaStore)
	commentService := services.NewCommentService(commentRepo, postRepo)
	followService := services.NewFollowService(followRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	feedHandler := handlers.NewFeedHandler(feedService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	followHandler := handlers.NewFollowHandler(followService)

	gin.SetMode(cfg.Server.Mode)

	r := routers.SetupRouter(
		zapLogger,
		tokenManager,
		pageCache,
		mediaStore.Root(),
		authHandler,
		feedHandler,
		postHandler,
		commentHandler,
		followHandler,
	)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	zapLogger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
