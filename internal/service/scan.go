package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/storage"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/vision"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/nutrition"
	"github.com/icalorie/icalorie-backend/internal/repository"
)

// ScanResult 是一次扫描返回给前端的完整结果 (VO)
type ScanResult struct {
	Items         []model.EstimatedFoodItem `json:"items"`
	TotalCalories float64                   `json:"total_calories"`
	PhotoURL      string                    `json:"photo_url,omitempty"`
}

// ScanService 串起一次完整的拍照估算：
// 计量扣费 → 照片上传 → 视觉识别 → 逐项营养估算
type ScanService struct {
	meter    *MeterService
	vision   vision.Provider
	pipeline *nutrition.Pipeline
	usage    repository.UsageRepo
	store    *storage.Client // 可以为 nil（本地跑不起 MinIO 时）
}

// NewScanService 构造函数 (依赖注入)
func NewScanService(meter *MeterService, visionClient vision.Provider, pipeline *nutrition.Pipeline, usage repository.UsageRepo, store *storage.Client) *ScanService {
	return &ScanService{
		meter:    meter,
		vision:   visionClient,
		pipeline: pipeline,
		usage:    usage,
		store:    store,
	}
}

// ScanPlate 处理一次拍照估算请求
//
// 扣费在最前面：扣不动直接拒绝，流水线根本不跑
// 照片上传失败只丢 URL 不丢结果；视觉模型失败对本次请求是致命的
func (s *ScanService) ScanPlate(ctx context.Context, userID string, image []byte, contentType string, plateSizeCM float64) (*ScanResult, error) {
	slog.Info("收到扫描请求", "uid", userID, "imageBytes", len(image))

	// 1. 先过计量闸门
	if err := s.meter.TryConsume(ctx, userID); err != nil {
		return nil, err
	}

	// 2. 照片上传（fail-soft）
	var photoURL string
	if s.store != nil {
		key := fmt.Sprintf("meals/%s/%s.jpg", userID, uuid.NewString())
		url, err := s.store.UploadPublicImage(ctx, key, image, contentType)
		if err != nil {
			slog.Warn("照片上传失败，继续估算", "error", err)
		} else {
			photoURL = url
		}
	}

	// 3. 视觉识别；没有食物数据就没有结果，这一步失败直接返回
	analysis, err := s.vision.AnalyzePlate(ctx, image, plateSizeCM)
	if err != nil {
		return nil, err
	}

	// 4. 逐项估算
	items := s.pipeline.Run(ctx, analysis.Items)

	var total float64
	for _, item := range items {
		total += item.Calories
	}

	// 5. token 消耗异步落库，不挡主流程
	go func() {
		// 外面的 ctx 会在请求结束时取消，这里要新开一个
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		record := &model.TokenUsage{
			UserID:           userID,
			ModelName:        analysis.ModelName,
			InputTokens:      analysis.Usage.InputTokens,
			OutputTokens:     analysis.Usage.OutputTokens,
			TotalTokens:      analysis.Usage.TotalTokens,
			EstimatedCostUSD: analysis.Usage.CostUSD,
			Endpoint:         "/scan",
		}
		if err := s.usage.Create(bgCtx, record); err != nil {
			slog.Error("token 用量落库失败", "error", err)
		}
	}()

	return &ScanResult{
		Items:         items,
		TotalCalories: total,
		PhotoURL:      photoURL,
	}, nil
}

// ConfirmScan 用户在前端改完条目后重新汇总
// 不再扣费、不再跑模型，只是把改过的数字加一遍
func (s *ScanService) ConfirmScan(items []model.EstimatedFoodItem, photoURL string) *ScanResult {
	var total float64
	for _, item := range items {
		total += item.Calories
	}
	return &ScanResult{
		Items:         items,
		TotalCalories: total,
		PhotoURL:      photoURL,
	}
}
