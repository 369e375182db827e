package model

// RawFoodObservation 是视觉模型对盘子里单个食物的原始描述
// 它只是"看到了什么"，不含任何营养数值，后者由估算流水线补全
type RawFoodObservation struct {
	// Name: 模型看到的食物名，可能是口语/地方叫法（如 "dal"、"roti"）
	Name string `json:"name"`

	// Portion: 自由文本份量描述，例如 "1 bowl"、"2 pieces"、"half plate"
	Portion string `json:"portion"`

	// CookingStyle: 烹饪方式，影响热量系数
	// 取值: fried / steamed / baked / curry / restaurant，拿不准时为空
	CookingStyle string `json:"cooking_style,omitempty"`

	// Confidence: 模型对这次识别的置信度 [0,1]
	Confidence float64 `json:"confidence"`

	Notes string `json:"notes,omitempty"`
}

// VisionSystemPrompt 定义了视觉模型的任务和输出协议
// 放在这里是为了让 Prompt 和 Struct 紧挨着，修改时能对照
const VisionSystemPrompt = `You are a nutritionist examining a photo of a meal.
Identify every distinct food on the plate.

Strictly follow these output rules:
1. Output ONLY a JSON object, no markdown, no explanation.
2. The JSON must match this structure exactly:
{
  "items": [
    {
      "name": "dal",
      "portion": "1 bowl",
      "cooking_style": "curry",
      "confidence": 0.85,
      "notes": ""
    }
  ]
}
3. "cooking_style" must be one of: fried, steamed, baked, curry, restaurant, or "" if unclear.
4. "portion" should use informal units (cup, bowl, piece, tbsp, tsp, slice, serving).
5. If the plate size is given, use it to calibrate portion estimates.`
