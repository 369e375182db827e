package model

import "time"

// TokenUsage 记录每次调用视觉模型消耗的 token 和估算成本，用于成本核算
type TokenUsage struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ModelName        string    `gorm:"type:varchar(64);not null" json:"model_name"` // 例如 "gpt-4o-mini"
	InputTokens      int       `gorm:"not null;default:0" json:"input_tokens"`
	OutputTokens     int       `gorm:"not null;default:0" json:"output_tokens"`
	TotalTokens      int       `gorm:"not null;default:0" json:"total_tokens"`
	EstimatedCostUSD float64   `json:"estimated_cost_usd"`
	Endpoint         string    `gorm:"type:varchar(64)" json:"endpoint"` // 例如 "/scan"
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

func (TokenUsage) TableName() string {
	return "token_usage"
}
