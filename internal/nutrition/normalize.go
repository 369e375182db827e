package nutrition

import "strings"

// normalizationRules 把口语/地方菜名映射到 USDA 数据库的规范叫法
// 视觉模型说 "dal"，USDA 里对应的是 "lentils, cooked"
var normalizationRules = map[string]string{
	"dal":           "lentils, cooked",
	"daal":          "lentils, cooked",
	"white rice":    "rice, white, cooked long grain",
	"brown rice":    "rice, brown, cooked",
	"chicken curry": "chicken, meat only, cooked, stewed",
	"biryani":       "rice, white, cooked long grain",
	"chapati":       "bread, whole wheat, commercially prepared",
	"roti":          "bread, whole wheat, commercially prepared",
	"naan":          "naan",
	"paneer":        "cheese, paneer",
	"yogurt":        "yogurt, plain, whole milk",
	"curd":          "yogurt, plain, whole milk",
}

// NormalizeName 把自由文本食物名规范化为查库用的关键词
// 纯函数：对任何输入都有结果，且幂等
func NormalizeName(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := normalizationRules[normalized]; ok {
		return canonical
	}
	return normalized
}
