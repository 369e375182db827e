package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/repository"
)

// MeterService 管理每个用户的可消费扫描余额
// 余额只有三条路可以动：扣一次、定时补给、购买入账
// 所有修改都落在仓储层的条件更新上，应用层不做读-改-写
type MeterService struct {
	users             repository.UserRepo
	maxFreeScans      int
	replenishInterval time.Duration
}

// NewMeterService 构造函数 (依赖注入)
func NewMeterService(users repository.UserRepo, maxFreeScans int, replenishInterval time.Duration) *MeterService {
	return &MeterService{
		users:             users,
		maxFreeScans:      maxFreeScans,
		replenishInterval: replenishInterval,
	}
}

// TryConsume 尝试扣掉一次扫描
// 先做到期补给（把低于上限的余额抬回上限），再原子扣减
// 两步都是单条条件 UPDATE，和并发扣减任意交错都不会丢一次扣减
func (s *MeterService) TryConsume(ctx context.Context, userID string) error {
	if s.replenishInterval > 0 {
		cutoff := time.Now().Add(-s.replenishInterval)
		if err := s.users.ReplenishIfDue(ctx, userID, s.maxFreeScans, cutoff); err != nil {
			return err
		}
	}

	ok, err := s.users.ConsumeScan(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditPurchase 把已通过平台校验的购买兑换成扫描次数
// 这里信任入参：真伪校验必须在调用之前完成
// 凭证查重 + 入账在仓储层的同一个事务里，重复凭证原样返回错误、余额不动
func (s *MeterService) CreditPurchase(ctx context.Context, userID, platform, productID, receiptToken string) (*model.PurchaseReceipt, error) {
	pkg, ok := model.FindScanPackage(productID)
	if !ok {
		return nil, ErrUnknownProduct
	}

	receipt := &model.PurchaseReceipt{
		UserID:       userID,
		Platform:     platform,
		ProductID:    productID,
		ReceiptToken: receiptToken,
		ScansAdded:   pkg.Scans,
		PriceUSD:     pkg.PriceUSD,
		VerifiedAt:   time.Now(),
	}

	if err := s.users.CreditScans(ctx, receipt); err != nil {
		return nil, err
	}

	slog.Info("购买入账", "userID", userID, "product", productID, "scans", pkg.Scans)
	return receipt, nil
}

// BatchReplenish 全量补给（由外部调度器按周期触发）
// 只抬不降、幂等：同一周期跑两遍，第二遍对所有人都是空操作
func (s *MeterService) BatchReplenish(ctx context.Context) (int64, error) {
	affected, err := s.users.ReplenishAll(ctx, s.maxFreeScans)
	if err != nil {
		return 0, err
	}
	slog.Info("定时补给完成", "affected", affected, "ceiling", s.maxFreeScans)
	return affected, nil
}

// Balance 查当前余额
func (s *MeterService) Balance(ctx context.Context, userID string) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.ScansRemaining, nil
}
