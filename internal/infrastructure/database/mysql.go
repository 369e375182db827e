package database

import (
	"log"
	"time"

	"github.com/icalorie/icalorie-backend/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewMySQLConnection(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info), // 开发阶段显示 SQL 日志
		// 把底层的唯一键冲突翻译成 gorm.ErrDuplicatedKey，
		// 凭证防重放要靠它兜底
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Fatal: 无法连接数据库: %v", err)
	}

	// 自动建表 (Auto Migrate)
	for _, m := range []interface{}{
		&model.User{},
		&model.MealLog{},
		&model.PurchaseReceipt{},
		&model.TokenUsage{},
		&model.UserFeedback{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			log.Fatalf("Fatal: 数据库迁移失败: %v", err)
		}
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
