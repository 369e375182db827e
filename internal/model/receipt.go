package model

import "time"

// PurchaseReceipt 是购买凭证的审计记录，只插入、不修改、不删除
// receipt_token 上的唯一索引是防重放的最终防线
type PurchaseReceipt struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Platform     string    `gorm:"type:varchar(16);not null" json:"platform"` // 'android' / 'ios'
	ProductID    string    `gorm:"type:varchar(128);not null" json:"product_id"`
	ReceiptToken string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_receipt_token,length:255" json:"receipt_token"`
	ScansAdded   int       `gorm:"not null" json:"scans_added"`
	PriceUSD     float64   `json:"price_usd"`
	VerifiedAt   time.Time `json:"verified_at"`
}

func (PurchaseReceipt) TableName() string {
	return "purchase_receipts"
}
