package nutrition

import (
	"context"

	"github.com/icalorie/icalorie-backend/internal/model"
)

// Pipeline 把视觉模型的原始观察逐条加工成最终的营养估算
type Pipeline struct {
	lookup Lookup // 依赖接口，而不是具体 struct
}

// NewPipeline 构造函数 (依赖注入)
func NewPipeline(lookup Lookup) *Pipeline {
	return &Pipeline{lookup: lookup}
}

// Run 对每个食物依次：规范名 → 查库 → 换算克重 → 估热量/宏量
// 输出顺序与输入一致；单个食物查库失败只影响它自己，降级为零值继续，
// 一个烂苹果不搞砸一整盘
func (p *Pipeline) Run(ctx context.Context, raw []model.RawFoodObservation) []model.EstimatedFoodItem {
	items := make([]model.EstimatedFoodItem, 0, len(raw))

	for _, obs := range raw {
		normalized := NormalizeName(obs.Name)
		facts := p.lookup.Search(ctx, normalized)
		grams := ResolvePortion(normalized, obs.Portion, facts.CanonicalServingGrams)

		items = append(items, model.EstimatedFoodItem{
			Name:           obs.Name,
			NormalizedName: normalized,
			Portion:        obs.Portion,
			Grams:          grams,
			Calories:       EstimateCalories(grams, facts.KcalPer100g, obs.CookingStyle),
			ProteinG:       ScaleMacro(grams, facts.ProteinPer100g),
			CarbsG:         ScaleMacro(grams, facts.CarbsPer100g),
			FatG:           ScaleMacro(grams, facts.FatPer100g),
			Confidence:     obs.Confidence,
			Notes:          obs.Notes,
		})
	}

	return items
}
