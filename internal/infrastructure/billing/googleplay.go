package billing

import (
	"context"
	"fmt"

	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/option"
)

// Google Play 的购买状态
// 0 = Purchased, 1 = Canceled, 2 = Pending
const purchaseStatePurchased = 0

// GooglePlayClient 通过 Android Publisher API 校验应用内购买
type GooglePlayClient struct {
	svc         *androidpublisher.Service
	packageName string
}

// NewGooglePlayClient 构造函数
// 需要一个有 androidpublisher 权限的 service account JSON
func NewGooglePlayClient(ctx context.Context, serviceAccountFile, packageName string) (*GooglePlayClient, error) {
	svc, err := androidpublisher.NewService(ctx,
		option.WithCredentialsFile(serviceAccountFile),
		option.WithScopes(androidpublisher.AndroidpublisherScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init android publisher service: %w", err)
	}

	return &GooglePlayClient{svc: svc, packageName: packageName}, nil
}

// Verify 向 Google Play 查询凭证对应的购买记录
// API 报错时不向上抛：返回 Valid=false + 原因，和"未购买"走同一条路
func (c *GooglePlayClient) Verify(ctx context.Context, productID, purchaseToken string) (*VerificationResult, error) {
	purchase, err := c.svc.Purchases.Products.
		Get(c.packageName, productID, purchaseToken).
		Context(ctx).Do()
	if err != nil {
		return &VerificationResult{
			Valid: false,
			Err:   fmt.Sprintf("Google Play API error: %v", err),
		}, nil
	}

	if purchase.PurchaseState != purchaseStatePurchased {
		return &VerificationResult{
			Valid:         false,
			PurchaseState: purchase.PurchaseState,
			Err:           fmt.Sprintf("purchase state is %d (not purchased)", purchase.PurchaseState),
		}, nil
	}

	return &VerificationResult{
		Valid:         true,
		PurchaseState: purchase.PurchaseState,
		OrderID:       purchase.OrderId,
		Acknowledged:  purchase.AcknowledgementState == 1,
	}, nil
}

// Acknowledge 确认收货，Google Play 要求加完权益后必须确认
func (c *GooglePlayClient) Acknowledge(ctx context.Context, productID, purchaseToken string) error {
	return c.svc.Purchases.Products.
		Acknowledge(c.packageName, productID, purchaseToken,
			&androidpublisher.ProductPurchasesAcknowledgeRequest{}).
		Context(ctx).Do()
}
