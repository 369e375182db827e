package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api/response"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/billing"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/repository"
	"github.com/icalorie/icalorie-backend/internal/service"
)

// BillingController 余额查询、商品目录、购买凭证兑换
type BillingController struct {
	meter    *service.MeterService
	verifier billing.Verifier // 没配 service account 时为 nil
	usage    repository.UsageRepo
}

// NewBillingController 构造函数
func NewBillingController(meter *service.MeterService, verifier billing.Verifier, usage repository.UsageRepo) *BillingController {
	return &BillingController{meter: meter, verifier: verifier, usage: usage}
}

// Balance 余额查询
// @Summary 当前扫描余额
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/scans [get]
func (ctrl *BillingController) Balance(c *gin.Context) {
	userID := c.GetString("userID")

	balance, err := ctrl.meter.Balance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "查询余额失败")
		return
	}
	response.Success(c, gin.H{"scans_remaining": balance})
}

// Pricing 商品目录
// @Summary 可购买的扫描次数包
// @Tags Billing
// @Produce json
// @Success 200 {object} response.Response
// @Router /scans/pricing [get]
func (ctrl *BillingController) Pricing(c *gin.Context) {
	response.Success(c, gin.H{
		"packages":       model.ScanPackages,
		"price_per_scan": model.PricePerScan,
	})
}

// AndroidPurchaseRequest 安卓端购买凭证
type AndroidPurchaseRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	PurchaseToken string `json:"purchase_token" binding:"required"`
}

// VerifyAndroidPurchase 校验并兑换安卓内购
// @Summary 校验 Google Play 购买并入账
// @Description 1. Google Play 校验真伪 2. 凭证查重（防重放） 3. 加余额 4. 回执确认
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AndroidPurchaseRequest true "凭证参数"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response "凭证已兑换过"
// @Router /auth/scans/verify-android-purchase [post]
func (ctrl *BillingController) VerifyAndroidPurchase(c *gin.Context) {
	userID := c.GetString("userID")

	var req AndroidPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	if ctrl.verifier == nil {
		response.Error(c, http.StatusInternalServerError, "Google Play 校验未配置")
		return
	}

	// 1. 先校验真伪，没通过绝不动余额
	result, err := ctrl.verifier.Verify(c.Request.Context(), req.ProductID, req.PurchaseToken)
	if err != nil || !result.Valid {
		msg := "校验失败"
		if result != nil && result.Err != "" {
			msg = result.Err
		}
		slog.Warn("购买校验未通过", "userID", userID, "product", req.ProductID, "reason", msg)
		response.Error(c, http.StatusBadRequest, "购买校验未通过: "+msg)
		return
	}

	// 2. 入账（内部带凭证查重）
	receipt, err := ctrl.meter.CreditPurchase(c.Request.Context(), userID, "android", req.ProductID, req.PurchaseToken)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateReceipt):
			// 和校验失败区分开：这单已经成功过，客户端不要再重试
			response.Error(c, http.StatusConflict, "这笔购买已经兑换过了")
		case errors.Is(err, service.ErrUnknownProduct):
			response.Error(c, http.StatusBadRequest, "未知商品: "+req.ProductID)
		default:
			slog.Error("购买入账失败", "userID", userID, "error", err)
			response.Error(c, http.StatusInternalServerError, "入账失败，请联系客服")
		}
		return
	}

	// 3. 回执确认放后台：Google Play 侧是幂等的，失败了重试即可
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ctrl.verifier.Acknowledge(bgCtx, req.ProductID, req.PurchaseToken); err != nil {
			slog.Error("购买回执确认失败", "product", req.ProductID, "error", err)
		}
	}()

	balance, err := ctrl.meter.Balance(c.Request.Context(), userID)
	if err != nil {
		balance = -1 // 入账已成功，余额查询失败不影响响应
	}

	response.Success(c, gin.H{
		"scans_added":     receipt.ScansAdded,
		"scans_remaining": balance,
		"order_id":        result.OrderID,
	})
}

// Usage token 消耗历史
// @Summary token 消耗历史（分页）
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Param limit query int false "每页条数" default(20)
// @Param offset query int false "偏移" default(0)
// @Success 200 {object} response.Response
// @Router /auth/scans/usage [get]
func (ctrl *BillingController) Usage(c *gin.Context) {
	userID := c.GetString("userID")

	var query struct {
		Limit  int `form:"limit,default=20"`
		Offset int `form:"offset,default=0"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误")
		return
	}

	records, total, err := ctrl.usage.ListByUser(c.Request.Context(), userID, query.Limit, query.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	totals, err := ctrl.usage.Totals(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	response.Success(c, gin.H{
		"usage":             records,
		"total_records":     total,
		"total_tokens_used": totals.TotalTokens,
		"total_cost_usd":    totals.TotalCostUSD,
		"limit":             query.Limit,
		"offset":            query.Offset,
	})
}
