package repository

import (
	"context"
	"time"

	"github.com/icalorie/icalorie-backend/internal/model"
	"gorm.io/gorm"
)

// DailyTotal 某一天的热量合计，给 7 日汇总用
type DailyTotal struct {
	Date          string  `gorm:"column:date"`
	TotalCalories float64 `gorm:"column:total_calories"`
}

// MealRepo 定义接口 (为了以后方便 Mock)
type MealRepo interface {
	Create(ctx context.Context, log *model.MealLog) error
	GetByID(ctx context.Context, id uint) (*model.MealLog, error)
	ListByUser(ctx context.Context, userID string, day *time.Time) ([]model.MealLog, error)
	Delete(ctx context.Context, id uint) error
	DailyTotals(ctx context.Context, userID string, start, end time.Time) ([]DailyTotal, error)
}

type mealRepo struct {
	db *gorm.DB
}

func NewMealRepo(db *gorm.DB) MealRepo {
	return &mealRepo{db: db}
}

func (r *mealRepo) Create(ctx context.Context, log *model.MealLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *mealRepo) GetByID(ctx context.Context, id uint) (*model.MealLog, error) {
	var log model.MealLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// ListByUser 按时间倒序，day 非空时只取那一天的记录
func (r *mealRepo) ListByUser(ctx context.Context, userID string, day *time.Time) ([]model.MealLog, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		query = query.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
	}

	var logs []model.MealLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *mealRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MealLog{}, id).Error
}

func (r *mealRepo) DailyTotals(ctx context.Context, userID string, start, end time.Time) ([]DailyTotal, error) {
	var rows []DailyTotal
	err := r.db.WithContext(ctx).Model(&model.MealLog{}).
		Select("DATE(created_at) AS date, SUM(total_calories) AS total_calories").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Group("DATE(created_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
