package nutrition

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// USDA FoodData Central 的营养素编号
// 能量有三种编码（特定因子/通用因子/直接 kcal），取第一个命中的
const (
	nutrientEnergyKcal        = 1008
	nutrientEnergySpecific    = 2047
	nutrientEnergyGeneral     = 2048
	nutrientProtein           = 1003
	nutrientCarbsByDifference = 1005
	nutrientTotalFat          = 1004
)

// genericDishWords 出现这些词的描述多半是复合菜（沙拉/汉堡/加工品），
// 它们的每 100g 数据不适合当作基础食材的参照，选择时先排除
var genericDishWords = []string{"salad", "burger", "sandwich", "prepared", "with", "flavored"}

// USDAClient 查询 USDA FoodData Central 搜索接口
type USDAClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewUSDAClient 构造函数
// 查询必须限时，超时和查不到同样处理
func NewUSDAClient(apiKey, baseURL string) *USDAClient {
	if baseURL == "" {
		baseURL = "https://api.nal.usda.gov/fdc/v1"
	}
	return &USDAClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	Description     string           `json:"description"`
	DataType        string           `json:"dataType"`
	ServingSize     float64          `json:"servingSize"`
	ServingSizeUnit string           `json:"servingSizeUnit"`
	FoodNutrients   []searchNutrient `json:"foodNutrients"`
}

type searchNutrient struct {
	NutrientID int     `json:"nutrientId"`
	Value      float64 `json:"value"`
}

// Search 查询规范名对应的每 100g 营养数据
// 任何失败（无 key、网络错、解析错、无结果）都返回零值 Facts，不报错：
// 一个食物查不到不能搞砸整盘的估算
func (c *USDAClient) Search(ctx context.Context, normalizedName string) Facts {
	if c.apiKey == "" {
		slog.Warn("USDA api key 未配置，返回零值营养数据")
		return Facts{}
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", normalizedName)
	params.Set("pageSize", "50")
	// 只要两个基础数据层，品牌食品的数据噪音太大
	params.Set("dataType", "Foundation,SR Legacy")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/foods/search?"+params.Encode(), nil)
	if err != nil {
		return Facts{}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("USDA 查询失败", "query", normalizedName, "error", err)
		return Facts{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("USDA 返回非 200", "query", normalizedName, "status", resp.StatusCode)
		return Facts{}
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Warn("USDA 响应解析失败", "query", normalizedName, "error", err)
		return Facts{}
	}
	if len(data.Foods) == 0 {
		return Facts{}
	}

	best := pickBestMatch(data.Foods, normalizedName)
	return extractFacts(best)
}

// pickBestMatch 在候选中挑一条最可信的：
//  1. 描述完全相同（不区分大小写）直接用
//  2. 排除复合菜描述；如果排空了就放弃这步过滤
//  3. 剩下的取描述最短的——越短越接近基础食材，数据越干净
func pickBestMatch(foods []searchFood, query string) searchFood {
	for _, f := range foods {
		if strings.EqualFold(f.Description, query) {
			return f
		}
	}

	filtered := make([]searchFood, 0, len(foods))
	for _, f := range foods {
		if !containsGenericDishWord(f.Description) {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == 0 {
		filtered = foods
	}

	best := filtered[0]
	for _, f := range filtered[1:] {
		if len(f.Description) < len(best.Description) {
			best = f
		}
	}
	return best
}

func containsGenericDishWord(description string) bool {
	desc := strings.ToLower(description)
	for _, w := range genericDishWords {
		if strings.Contains(desc, w) {
			return true
		}
	}
	return false
}

func extractFacts(food searchFood) Facts {
	facts := Facts{Found: true}

	for _, n := range food.FoodNutrients {
		switch n.NutrientID {
		case nutrientEnergyKcal, nutrientEnergySpecific, nutrientEnergyGeneral:
			if facts.KcalPer100g == 0 {
				facts.KcalPer100g = n.Value
			}
		case nutrientProtein:
			facts.ProteinPer100g = n.Value
		case nutrientCarbsByDifference:
			facts.CarbsPer100g = n.Value
		case nutrientTotalFat:
			facts.FatPer100g = n.Value
		}
	}

	// 只认克为单位的 serving size，其他单位没法直接换算
	unit := strings.ToLower(food.ServingSizeUnit)
	if food.ServingSize > 0 && (unit == "g" || unit == "grm") {
		facts.CanonicalServingGrams = food.ServingSize
	}

	return facts
}
