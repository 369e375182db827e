package nutrition

import (
	"math"
	"strings"
)

// EstimateCalories 按克重和每 100g 热量计算总热量，附加烹饪方式系数
// 结果按 10 取整：估算本身就有误差，精确到个位数是假精度
func EstimateCalories(grams, kcalPer100g float64, cookingStyle string) float64 {
	base := grams / 100.0 * kcalPer100g

	multiplier := 1.0
	style := strings.ToLower(cookingStyle)
	switch {
	case strings.Contains(style, "fried"):
		multiplier += 0.15
	case strings.Contains(style, "curry"), strings.Contains(style, "gravy"):
		multiplier += 0.10
	case strings.Contains(style, "restaurant"):
		multiplier += 0.20
	case strings.Contains(style, "baked"):
		multiplier += 0.05
		// steamed / 空值不加系数
	}

	calories := math.Round(base*multiplier/10) * 10
	if calories < 0 {
		return 0
	}
	return calories
}

// ScaleMacro 按克重线性缩放每 100g 的宏量营养素，保留一位小数
// 烹饪方式系数只影响热量，不影响宏量
func ScaleMacro(grams, per100g float64) float64 {
	v := math.Round(grams/100.0*per100g*10) / 10
	if v < 0 {
		return 0
	}
	return v
}
