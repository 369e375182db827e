package model

import "time"

type User struct {
	ID             string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email          string `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	Name           string `gorm:"type:varchar(100)" json:"name"`
	Password       string `gorm:"type:varchar(255);not null" json:"-"`
	ProfilePicture string `gorm:"type:varchar(512)" json:"-"` // 只存 S3 key，不存完整 URL

	// 扫描计量：每次成功估算扣 1，定时补给到免费上限，购买可叠加
	// 只允许通过 MeterService 修改，永远不会为负
	ScansRemaining  int       `gorm:"not null;default:5" json:"scans_remaining"`
	LastReplenishAt time.Time `json:"last_replenish_at"`

	DailyCalorieGoal int `gorm:"not null;default:2000" json:"daily_calorie_goal"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthClaims struct {
	UserID string `json:"user_id"`
}
