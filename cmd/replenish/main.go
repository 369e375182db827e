package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/icalorie/icalorie-backend/internal/config"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/database"
	"github.com/icalorie/icalorie-backend/internal/repository"
	"github.com/icalorie/icalorie-backend/internal/service"
)

// 定时补给入口：把所有低于免费上限的余额抬回上限
// 由 cron 按补给周期调度，例如 0 0 * * * 每天零点跑一次
// 只抬不降、幂等，重复执行不会多发
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	db := database.NewMySQLConnection(conf.Database.DSN)

	userRepo := repository.NewUserRepo(db)
	replenishInterval := time.Duration(conf.Scans.ReplenishIntervalHours) * time.Hour
	meter := service.NewMeterService(userRepo, conf.Scans.MaxFreeScans, replenishInterval)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	affected, err := meter.BatchReplenish(ctx)
	if err != nil {
		slog.Error("定时补给失败", "error", err)
		os.Exit(1)
	}
	slog.Info("定时补给结束", "usersReplenished", affected)
}
