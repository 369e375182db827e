package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePortion(t *testing.T) {
	tests := []struct {
		name      string
		food      string
		portion   string
		canonical float64
		expected  float64
	}{
		// 分类表命中
		{"米饭按杯", "rice, white, cooked long grain", "2 cups", 0, 316},
		{"小数数量", "rice, white, cooked long grain", "2.5 cup", 0, 395},
		{"豆糊按碗", "lentils, cooked", "1 bowl", 0, 240},
		{"整只水果", "apple", "1 piece", 0, 120},
		{"披萨按片", "pizza", "2 slices", 0, 214},
		{"牛奶按杯", "milk", "1 cup", 0, 245},

		// 通用表兜底（没有任何分类命中）
		{"通用 tbsp", "peanut butter", "1 tbsp", 0, 14},
		{"通用 tsp", "sugar syrup", "2 tsp", 0, 10},
		{"通用 serving", "mystery casserole", "1 serving", 0, 150},

		// 数量缺省按 1 份
		{"无数字默认一份", "rice", "cup", 0, 158},

		// 查库 serving 优先级最高
		{"canonical 覆盖分类表", "rice", "2 cups", 100, 200},
		{"canonical 覆盖通用表", "peanut butter", "1 tbsp", 32, 32},

		// 识别不出来的一律 150g，带数字也一样
		{"未知单位", "rice", "a lot", 0, 150},
		{"未知单位带数字", "rice", "2 handfuls", 0, 150},
		{"空份量", "rice", "", 0, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePortion(tt.food, tt.portion, tt.canonical)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

// tbsp 的匹配必须先于 tsp，否则 "1 tbsp" 会被错算成 5g
func TestResolvePortionTbspBeforeTsp(t *testing.T) {
	got := ResolvePortion("unknown sauce", "1 tbsp", 0)
	assert.InDelta(t, 14.0, got, 0.001)
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		food     string
		category string
	}{
		{"lentils, cooked", "lentil_curry"},
		{"chicken curry", "lentil_curry"}, // curry 关键词
		{"rice, brown, cooked", "rice_grain"},
		{"bread, whole wheat, commercially prepared", "flatbread"},
		{"mango", "fruit_whole"},
		{"yogurt, plain, whole milk", "dairy_liquid"},
	}
	for _, tt := range tests {
		cat := DetectCategory(tt.food)
		if assert.NotNil(t, cat, tt.food) {
			assert.Equal(t, tt.category, cat.Name)
		}
	}

	assert.Nil(t, DetectCategory("grilled salmon"))
}
