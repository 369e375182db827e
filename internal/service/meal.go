package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/repository"
)

// DailySummary 7 日汇总里的一天
type DailySummary struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
}

type MealService struct {
	meals repository.MealRepo
	users repository.UserRepo
}

func NewMealService(meals repository.MealRepo, users repository.UserRepo) *MealService {
	return &MealService{meals: meals, users: users}
}

// CreateLog 保存一餐记录
// createdAt 允许前端补录（离线记录同步），非法时间兜底用当前时间
func (s *MealService) CreateLog(ctx context.Context, userID string, items []model.EstimatedFoodItem, totalCalories float64, photoURL string, plateSizeCM float64, createdAt *time.Time) (*model.MealLog, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	when := time.Now()
	if createdAt != nil {
		when = *createdAt
	}

	log := &model.MealLog{
		UserID:        userID,
		CreatedAt:     when,
		TotalCalories: totalCalories,
		PhotoURL:      photoURL,
		Items:         itemsJSON,
		PlateSizeCM:   plateSizeCM,
	}
	if err := s.meals.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// ListLogs 列出记录，day 非空时只取那一天
func (s *MealService) ListLogs(ctx context.Context, userID string, day *time.Time) ([]model.MealLog, error) {
	return s.meals.ListByUser(ctx, userID, day)
}

// GetLog 取单条记录 (带归属权校验)
func (s *MealService) GetLog(ctx context.Context, userID string, logID uint) (*model.MealLog, error) {
	log, err := s.meals.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log.UserID != userID {
		return nil, ErrForbidden
	}
	return log, nil
}

// DeleteLog 删除记录 (带归属权校验)
func (s *MealService) DeleteLog(ctx context.Context, userID string, logID uint) error {
	existing, err := s.meals.GetByID(ctx, logID)
	if err != nil {
		return err
	}

	// 🛡️ 安全核心：只能删自己的
	if existing.UserID != userID {
		return ErrForbidden
	}

	return s.meals.Delete(ctx, logID)
}

// Summary 最近 7 天的每日热量合计
// 老用户看今天往前的 7 天；注册不满 7 天的新用户看注册起的第一周，
// 避免图表前几根柱子永远是空的
func (s *MealService) Summary(ctx context.Context, userID string) ([]DailySummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var start time.Time
	if int(now.Sub(user.CreatedAt).Hours()/24) >= 6 {
		start = todayStart.AddDate(0, 0, -6)
	} else {
		c := user.CreatedAt.UTC()
		start = time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)
	}

	rows, err := s.meals.DailyTotals(ctx, userID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		// MySQL 的 DATE() 返回 "2006-01-02"，直接当 key 用
		totals[row.Date] = row.TotalCalories
	}

	summary := make([]DailySummary, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		summary = append(summary, DailySummary{
			Date:          date,
			TotalCalories: totals[date],
		})
	}
	return summary, nil
}
