package repository

import (
	"context"

	"github.com/icalorie/icalorie-backend/internal/model"
	"gorm.io/gorm"
)

// UsageTotals 某用户的累计消耗
type UsageTotals struct {
	TotalTokens  int64
	TotalCostUSD float64
}

// UsageRepo token 消耗审计
type UsageRepo interface {
	Create(ctx context.Context, usage *model.TokenUsage) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.TokenUsage, int64, error)
	Totals(ctx context.Context, userID string) (UsageTotals, error)
}

type usageRepo struct {
	db *gorm.DB
}

func NewUsageRepo(db *gorm.DB) UsageRepo {
	return &usageRepo{db: db}
}

func (r *usageRepo) Create(ctx context.Context, usage *model.TokenUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

func (r *usageRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.TokenUsage, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.TokenUsage{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.TokenUsage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *usageRepo) Totals(ctx context.Context, userID string) (UsageTotals, error) {
	var row struct {
		Tokens int64
		Cost   float64
	}
	err := r.db.WithContext(ctx).Model(&model.TokenUsage{}).
		Select("COALESCE(SUM(total_tokens),0) AS tokens, COALESCE(SUM(estimated_cost_usd),0) AS cost").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return UsageTotals{}, err
	}
	return UsageTotals{TotalTokens: row.Tokens, TotalCostUSD: row.Cost}, nil
}
