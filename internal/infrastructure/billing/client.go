package billing

import "context"

// VerificationResult 是平台计费接口对一张凭证的裁决
// Valid=false 时 Err 带上原因，调用方可以重试校验，但绝不能凭空加次数
type VerificationResult struct {
	Valid         bool
	PurchaseState int64
	OrderID       string
	Acknowledged  bool
	Err           string
}

// Verifier 定义购买校验的通用行为 (为了方便 Mock)
type Verifier interface {
	// Verify 校验凭证真伪；平台返回"未购买"不算 error，体现在 Result 里
	Verify(ctx context.Context, productID, purchaseToken string) (*VerificationResult, error)

	// Acknowledge 向平台确认收货，加完次数后必须调用，可重试（幂等）
	Acknowledge(ctx context.Context, productID, purchaseToken string) error
}
