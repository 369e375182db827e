package repository

import (
	"context"
	"errors"
	"time"

	"github.com/icalorie/icalorie-backend/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicateReceipt 同一张凭证第二次兑换
// 和"校验失败"必须是两种错误：前者客户端不该重试，后者可以
var ErrDuplicateReceipt = errors.New("purchase receipt already processed")

// UserRepo 定义接口 (为了以后方便 Mock)
// 计量相关的方法全部是条件更新：并发正确性在 SQL 这一层保证，
// 不靠应用层的读-改-写
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error

	// ConsumeScan 原子扣减一次：余额 > 0 才扣，返回是否扣成功
	ConsumeScan(ctx context.Context, userID string) (bool, error)

	// ReplenishIfDue 单用户补给：上次补给早于 cutoff 且余额低于上限时，
	// 一条 UPDATE 把余额抬到上限并盖时间戳；高于上限的余额永不降低
	ReplenishIfDue(ctx context.Context, userID string, ceiling int, cutoff time.Time) error

	// CreditScans 一个事务内完成：凭证查重 → 插凭证 → 加余额
	// 重复凭证返回 ErrDuplicateReceipt，余额不动
	CreditScans(ctx context.Context, receipt *model.PurchaseReceipt) error

	// ReplenishAll 全量补给，返回受影响的用户数；幂等
	ReplenishAll(ctx context.Context, ceiling int) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	// 没找到返回 gorm.ErrRecordNotFound
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) ConsumeScan(ctx context.Context, userID string) (bool, error) {
	// 同一用户两个并发请求、余额只剩 1 时，
	// WHERE scans_remaining > 0 保证只有一个 UPDATE 命中
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND scans_remaining > 0", userID).
		UpdateColumn("scans_remaining", gorm.Expr("scans_remaining - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepo) ReplenishIfDue(ctx context.Context, userID string, ceiling int, cutoff time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND scans_remaining < ? AND last_replenish_at <= ?", userID, ceiling, cutoff).
		UpdateColumns(map[string]interface{}{
			"scans_remaining":   ceiling,
			"last_replenish_at": time.Now(),
		}).Error
}

func (r *userRepo) CreditScans(ctx context.Context, receipt *model.PurchaseReceipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 先查重（快路径）
		var count int64
		if err := tx.Model(&model.PurchaseReceipt{}).
			Where("receipt_token = ?", receipt.ReceiptToken).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateReceipt
		}

		// 2. 插凭证；唯一索引是最终防线，并发时靠它兜底
		if err := tx.Create(receipt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReceipt
			}
			return err
		}

		// 3. 加余额，和插凭证同生共死
		return tx.Model(&model.User{}).
			Where("id = ?", receipt.UserID).
			UpdateColumn("scans_remaining", gorm.Expr("scans_remaining + ?", receipt.ScansAdded)).Error
	})
}

func (r *userRepo) ReplenishAll(ctx context.Context, ceiling int) (int64, error) {
	// 只抬不降：已经高于上限的（买了次数包的）用户不动
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("scans_remaining < ?", ceiling).
		UpdateColumns(map[string]interface{}{
			"scans_remaining":   ceiling,
			"last_replenish_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
