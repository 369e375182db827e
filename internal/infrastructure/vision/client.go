package vision

import (
	"context"
	"errors"

	"github.com/icalorie/icalorie-backend/internal/model"
)

// ErrUnparseable 表示模型输出在所有兜底手段之后仍然不是合法 JSON
// 没有食物数据就没有任何结果可言，这个错误对本次请求是致命的
var ErrUnparseable = errors.New("vision: model output is not valid JSON")

// Usage 单次调用的 token 消耗和估算成本
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CostUSD      float64
}

// PlateAnalysis 是视觉模型对一张餐盘照片的完整输出
type PlateAnalysis struct {
	Items     []model.RawFoodObservation
	ModelName string
	Usage     Usage
}

// Provider 定义了视觉模型的通用行为
type Provider interface {
	// AnalyzePlate 接收图片字节，返回识别出的食物列表
	// plateSizeCM 为 0 表示没有盘径提示
	AnalyzePlate(ctx context.Context, image []byte, plateSizeCM float64) (*PlateAnalysis, error)
}
