package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultPortionGrams 份量完全无法解析时的兜底克重（一份中等分量）
const DefaultPortionGrams = 150.0

// portionUnits 已知单位词表，按此顺序做包含匹配
// "cups" 包含 "cup"、"pieces" 包含 "piece"，复数自然折叠
// tbsp 必须排在 tsp 前面，避免误判
var portionUnits = []string{"cup", "bowl", "piece", "tbsp", "tsp", "slice", "serving"}

// genericUnitWeights 通用单位克重表（兜底档，分类表优先）
var genericUnitWeights = map[string]float64{
	"cup":     158, // 按米饭近似
	"bowl":    240,
	"tbsp":    14,
	"tsp":     5,
	"piece":   40, // 按薄饼近似
	"slice":   28,
	"serving": 150,
}

var quantityPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ResolvePortion 把 "2 cups" 这样的份量描述换算成克重
//
// 权重来源按优先级取第一个可用的：
//  1. 查库返回的 canonical serving × 数量
//  2. 食物分类表里该单位的克重 × 数量
//  3. 通用克重表 × 数量
//
// 识别不出单位时（比如 "a lot"），无论有没有数字都返回 150g
func ResolvePortion(normalizedName, portion string, canonicalServingGrams float64) float64 {
	p := strings.ToLower(strings.TrimSpace(portion))
	if p == "" {
		return DefaultPortionGrams
	}

	// 1. 提取前导数量，没有就当 1 份
	quantity := 1.0
	if m := quantityPattern.FindString(p); m != "" {
		if q, err := strconv.ParseFloat(m, 64); err == nil {
			quantity = q
		}
	}

	// 2. 识别单位
	var unit string
	for _, u := range portionUnits {
		if strings.Contains(p, u) {
			unit = u
			break
		}
	}
	if unit == "" {
		return DefaultPortionGrams
	}

	// 3. 三档权重来源
	if canonicalServingGrams > 0 {
		return canonicalServingGrams * quantity
	}
	if cat := DetectCategory(normalizedName); cat != nil {
		if w, ok := cat.UnitWeights[unit]; ok {
			return w * quantity
		}
	}
	return genericUnitWeights[unit] * quantity
}
