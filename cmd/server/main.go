package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api"
	"github.com/icalorie/icalorie-backend/internal/api/controller"
	"github.com/icalorie/icalorie-backend/internal/config"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/billing"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/database"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/storage"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/vision"
	"github.com/icalorie/icalorie-backend/internal/nutrition"
	"github.com/icalorie/icalorie-backend/internal/repository"
	"github.com/icalorie/icalorie-backend/internal/service"
)

// @title           iCalorie API
// @version         1.0
// @description     基于 Go + Gin + GPT-4o 视觉的拍照热量估算系统

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 请在输入框中输入 "Bearer <token>" (注意 Bearer 和 token 之间有空格)

func main() {
	// 1. 初始化 Logger
	// 使用 JSONHandler 可以让日志以 JSON 格式输出，方便解析
	// AddSource: true 会在日志里显示文件名和行号
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))
	slog.SetDefault(logger)

	slog.Info("iCalorie 系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization
	db := database.NewMySQLConnection(conf.Database.DSN) // 这里会自动建表

	visionClient := vision.NewGPTClient(conf.OpenAI.APIKey, conf.OpenAI.BaseURL, conf.OpenAI.Model)
	usdaClient := nutrition.NewUSDAClient(conf.USDA.APIKey, conf.USDA.BaseURL)
	pipeline := nutrition.NewPipeline(usdaClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// S3 和 Google Play 都是可选依赖：初始化失败只降级，不挡启动
	var store *storage.Client
	if conf.S3.Bucket != "" {
		store, err = storage.NewClient(ctx, conf.S3)
		if err != nil {
			slog.Warn("对象存储初始化失败，照片上传功能关闭", "error", err)
			store = nil
		}
	}

	var verifier billing.Verifier
	if conf.GooglePlay.ServiceAccountFile != "" {
		gp, err := billing.NewGooglePlayClient(ctx, conf.GooglePlay.ServiceAccountFile, conf.GooglePlay.PackageName)
		if err != nil {
			slog.Warn("Google Play 校验初始化失败，内购功能关闭", "error", err)
		} else {
			verifier = gp
		}
	}

	if conf.Server.Port != ":8080" { // 简单的判断，生产环境建议用配置字段
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	userRepo := repository.NewUserRepo(db)
	mealRepo := repository.NewMealRepo(db)
	usageRepo := repository.NewUsageRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)

	replenishInterval := time.Duration(conf.Scans.ReplenishIntervalHours) * time.Hour
	meterSvc := service.NewMeterService(userRepo, conf.Scans.MaxFreeScans, replenishInterval)
	scanSvc := service.NewScanService(meterSvc, visionClient, pipeline, usageRepo, store)
	mealSvc := service.NewMealService(mealRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, store, conf.Scans.MaxFreeScans)

	authController := controller.NewAuthController(authSvc)
	scanController := controller.NewScanController(scanSvc)
	mealController := controller.NewMealController(mealSvc)
	billingController := controller.NewBillingController(meterSvc, verifier, usageRepo)
	feedbackController := controller.NewFeedbackController(feedbackRepo)

	// 4. Server Start
	r := gin.Default()
	api.RegisterRoutes(r, authController, scanController, mealController, billingController, feedbackController)

	slog.Info("iCalorie Web Server 启动中", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("服务器启动失败", "error", err)
	}
}
