package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUSDAServer 起一个假的 FoodData Central，按固定响应回
func newUSDAServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *USDAClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewUSDAClient("test-key", srv.URL)
}

func foodsJSON(foods ...map[string]any) []byte {
	b, _ := json.Marshal(map[string]any{"foods": foods})
	return b
}

func TestUSDASearchRequestShape(t *testing.T) {
	var gotQuery map[string]string
	_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"api_key":  q.Get("api_key"),
			"query":    q.Get("query"),
			"pageSize": q.Get("pageSize"),
			"dataType": q.Get("dataType"),
		}
		assert.Equal(t, "/foods/search", r.URL.Path)
		w.Write(foodsJSON())
	})

	client.Search(context.Background(), "lentils, cooked")

	require.NotNil(t, gotQuery)
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "lentils, cooked", gotQuery["query"])
	assert.Equal(t, "50", gotQuery["pageSize"])
	assert.Equal(t, "Foundation,SR Legacy", gotQuery["dataType"])
}

func TestUSDASearchExactMatchWins(t *testing.T) {
	_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(foodsJSON(
			map[string]any{
				"description":   "Lentils, mature seeds, cooked, boiled",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 116.0}},
			},
			map[string]any{
				// 描述完全相同（不分大小写）必须直接命中，哪怕它更长
				"description":   "LENTILS, COOKED",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 114.0}},
			},
		))
	})

	facts := client.Search(context.Background(), "lentils, cooked")
	assert.True(t, facts.Found)
	assert.Equal(t, 114.0, facts.KcalPer100g)
}

func TestUSDASearchFiltersCompositeDishes(t *testing.T) {
	_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(foodsJSON(
			map[string]any{
				"description":   "Rice salad with dressing",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 250.0}},
			},
			map[string]any{
				"description":   "Rice, white, long-grain, regular, cooked",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 130.0}},
			},
			map[string]any{
				"description":   "Rice, white, cooked",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 129.0}},
			},
		))
	})

	// 复合菜被排除，剩下的取描述最短的
	facts := client.Search(context.Background(), "rice")
	assert.True(t, facts.Found)
	assert.Equal(t, 129.0, facts.KcalPer100g)
}

func TestUSDASearchFilterSkippedWhenAllBlocked(t *testing.T) {
	_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(foodsJSON(
			map[string]any{
				"description":   "Chicken sandwich with lettuce",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 230.0}},
			},
			map[string]any{
				"description":   "Burger, prepared",
				"foodNutrients": []map[string]any{{"nutrientId": 1008, "value": 280.0}},
			},
		))
	})

	// 全部都是复合菜时放弃过滤，退回最短描述，而不是空手而归
	facts := client.Search(context.Background(), "chicken burger")
	assert.True(t, facts.Found)
	assert.Equal(t, 280.0, facts.KcalPer100g)
}

func TestUSDASearchExtractsNutrients(t *testing.T) {
	_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(foodsJSON(map[string]any{
			"description":     "Lentils, cooked",
			"servingSize":     198.0,
			"servingSizeUnit": "g",
			"foodNutrients": []map[string]any{
				{"nutrientId": 2047, "value": 114.0}, // 特定因子能量先到先得
				{"nutrientId": 1008, "value": 116.0}, // 后到的能量编码被忽略
				{"nutrientId": 1003, "value": 9.02},
				{"nutrientId": 1005, "value": 19.5},
				{"nutrientId": 1004, "value": 0.38},
			},
		}))
	})

	facts := client.Search(context.Background(), "lentils, cooked")
	assert.True(t, facts.Found)
	assert.Equal(t, 114.0, facts.KcalPer100g)
	assert.Equal(t, 9.02, facts.ProteinPer100g)
	assert.Equal(t, 19.5, facts.CarbsPer100g)
	assert.Equal(t, 0.38, facts.FatPer100g)
	assert.Equal(t, 198.0, facts.CanonicalServingGrams)
}

func TestUSDASearchIgnoresNonGramServing(t *testing.T) {
	_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(foodsJSON(map[string]any{
			"description":     "Milk, whole",
			"servingSize":     240.0,
			"servingSizeUnit": "ml",
			"foodNutrients":   []map[string]any{{"nutrientId": 1008, "value": 61.0}},
		}))
	})

	facts := client.Search(context.Background(), "milk, whole")
	assert.True(t, facts.Found)
	assert.Zero(t, facts.CanonicalServingGrams)
}

// 查询失败的每一种姿势都必须安静降级成零值，绝不 panic、绝不报错
func TestUSDASearchFailSoft(t *testing.T) {
	t.Run("没有 api key", func(t *testing.T) {
		client := NewUSDAClient("", "http://127.0.0.1:1")
		assert.Equal(t, Facts{}, client.Search(context.Background(), "rice"))
	})

	t.Run("服务端 500", func(t *testing.T) {
		_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		assert.Equal(t, Facts{}, client.Search(context.Background(), "rice"))
	})

	t.Run("响应不是 JSON", func(t *testing.T) {
		_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		})
		assert.Equal(t, Facts{}, client.Search(context.Background(), "rice"))
	})

	t.Run("空结果集", func(t *testing.T) {
		_, client := newUSDAServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(foodsJSON())
		})
		assert.Equal(t, Facts{}, client.Search(context.Background(), "rice"))
	})

	t.Run("连不上", func(t *testing.T) {
		client := NewUSDAClient("test-key", "http://127.0.0.1:1")
		assert.Equal(t, Facts{}, client.Search(context.Background(), "rice"))
	})
}
