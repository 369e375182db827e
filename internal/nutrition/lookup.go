package nutrition

import "context"

// Facts 是一次营养查询的结果，数值都是每 100g 的含量
type Facts struct {
	KcalPer100g    float64
	ProteinPer100g float64
	CarbsPer100g   float64
	FatPer100g     float64

	// CanonicalServingGrams 数据源自己报告的典型一份克重
	// 有值时优先级高于所有单位克重表，没有则为 0
	CanonicalServingGrams float64

	// Found 区分"查到了一个零热量食物"和"根本没查到"
	// 查询失败时流水线照常降级为全零，但调用方至少能分辨
	Found bool
}

// Lookup 定义营养查询的通用行为 (为了方便 Mock)
// 实现必须 fail-soft：网络/解析失败一律返回零值 Facts，不向上抛错
type Lookup interface {
	Search(ctx context.Context, normalizedName string) Facts
}
