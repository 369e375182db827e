package model

import (
	"time"

	"gorm.io/datatypes"
)

// EstimatedFoodItem 是流水线对单个食物的最终估算结果
// grams/calories 永远非负，calories 已按 10 取整
type EstimatedFoodItem struct {
	Name           string  `json:"name"`            // 展示用，保留模型原话
	NormalizedName string  `json:"normalized_name"` // 查库用的规范名
	Portion        string  `json:"portion"`
	Grams          float64 `json:"grams"`
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbsG         float64 `json:"carbs_g"`
	FatG           float64 `json:"fat_g"`
	Confidence     float64 `json:"confidence"`
	Notes          string  `json:"notes,omitempty"`
}

// MealLog 是用户确认后的一餐记录
type MealLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	TotalCalories float64        `json:"total_calories"`
	PhotoURL      string         `gorm:"type:varchar(512)" json:"photo_url"`
	Items         datatypes.JSON `json:"items"` // []EstimatedFoodItem 的 JSON 快照
	PlateSizeCM   float64        `json:"plate_size_cm,omitempty"`
}

// TableName 强制指定表名
func (MealLog) TableName() string {
	return "meal_logs"
}
