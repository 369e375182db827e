package nutrition

import "strings"

// Category 是一类食物的单位→克重表
// 同样是 "1 cup"，米饭、豆糊和牛奶的质量差得很远，
// 分类表就是为了在没有完整食物数据库的前提下纠正这种偏差
type Category struct {
	Name        string
	Keywords    []string
	UnitWeights map[string]float64
}

// categories 固定的分类列表，按规范名关键词匹配，第一个命中即生效
var categories = []Category{
	{
		Name:        "fruit_whole",
		Keywords:    []string{"apple", "banana", "orange", "mango", "pear", "guava"},
		UnitWeights: map[string]float64{"piece": 120},
	},
	{
		Name:        "flatbread",
		Keywords:    []string{"chapati", "roti", "naan", "paratha", "tortilla", "bread, whole wheat"},
		UnitWeights: map[string]float64{"piece": 40, "slice": 40},
	},
	{
		Name:        "pizza",
		Keywords:    []string{"pizza"},
		UnitWeights: map[string]float64{"slice": 107, "piece": 107},
	},
	{
		Name:        "rice_grain",
		Keywords:    []string{"rice", "biryani", "quinoa", "oats"},
		UnitWeights: map[string]float64{"cup": 158, "bowl": 200},
	},
	{
		Name:        "lentil_curry",
		Keywords:    []string{"lentil", "dal", "curry", "stew"},
		UnitWeights: map[string]float64{"bowl": 240, "cup": 200},
	},
	{
		Name:        "dairy_liquid",
		Keywords:    []string{"milk", "yogurt", "lassi", "juice", "soup"},
		UnitWeights: map[string]float64{"cup": 245, "bowl": 300, "tbsp": 15, "tsp": 5},
	},
}

// DetectCategory 按关键词匹配食物分类，最多命中一个
// 没有命中返回 nil，调用方退回通用克重表
func DetectCategory(normalizedName string) *Category {
	name := strings.ToLower(normalizedName)
	for i := range categories {
		for _, kw := range categories[i].Keywords {
			if strings.Contains(name, kw) {
				return &categories[i]
			}
		}
	}
	return nil
}
