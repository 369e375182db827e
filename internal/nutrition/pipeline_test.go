package nutrition

import (
	"context"
	"testing"

	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookup 按规范名返回预置数据，查不到的名字返回零值
type fakeLookup struct {
	facts map[string]Facts
}

func (f *fakeLookup) Search(_ context.Context, normalizedName string) Facts {
	return f.facts[normalizedName]
}

func TestPipelineRunEndToEnd(t *testing.T) {
	lookup := &fakeLookup{facts: map[string]Facts{
		"lentils, cooked": {
			KcalPer100g:    120,
			ProteinPer100g: 9.0,
			CarbsPer100g:   20.0,
			FatPer100g:     0.4,
			Found:          true,
		},
	}}
	pipeline := NewPipeline(lookup)

	// 视觉模型说 "dal, 1 bowl, curry"：
	// 规范化成 lentils → 分类表碗装 240g → 288kcal × 1.10 咖喱系数 → 320
	items := pipeline.Run(context.Background(), []model.RawFoodObservation{
		{Name: "Dal", Portion: "1 bowl", CookingStyle: "curry", Confidence: 0.9},
	})

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Dal", item.Name)
	assert.Equal(t, "lentils, cooked", item.NormalizedName)
	assert.InDelta(t, 240.0, item.Grams, 0.001)
	assert.InDelta(t, 320.0, item.Calories, 0.001)
	assert.InDelta(t, 21.6, item.ProteinG, 0.001)
	assert.InDelta(t, 48.0, item.CarbsG, 0.001)
	assert.InDelta(t, 1.0, item.FatG, 0.001)
	assert.InDelta(t, 0.9, item.Confidence, 0.001)
}

func TestPipelineRunPreservesOrder(t *testing.T) {
	pipeline := NewPipeline(&fakeLookup{facts: map[string]Facts{}})

	raw := []model.RawFoodObservation{
		{Name: "rice", Portion: "1 cup"},
		{Name: "dal", Portion: "1 bowl"},
		{Name: "roti", Portion: "2 pieces"},
	}
	items := pipeline.Run(context.Background(), raw)

	require.Len(t, items, 3)
	for i := range raw {
		assert.Equal(t, raw[i].Name, items[i].Name)
	}
}

// 单个食物查不到只能影响它自己：热量宏量降级为零，克重照算，其他食物不受牵连
func TestPipelineRunFailSoftPerItem(t *testing.T) {
	lookup := &fakeLookup{facts: map[string]Facts{
		"rice, white, cooked long grain": {KcalPer100g: 130, Found: true},
	}}
	pipeline := NewPipeline(lookup)

	items := pipeline.Run(context.Background(), []model.RawFoodObservation{
		{Name: "white rice", Portion: "1 cup"},
		{Name: "unknown delicacy", Portion: "1 serving"},
	})

	require.Len(t, items, 2)

	// 第一个正常估算：158g × 1.3 = 205.4 → 210
	assert.InDelta(t, 210.0, items[0].Calories, 0.001)

	// 第二个降级：零热量零宏量，但克重与置信度保留
	assert.Zero(t, items[1].Calories)
	assert.Zero(t, items[1].ProteinG)
	assert.InDelta(t, 150.0, items[1].Grams, 0.001)
}

func TestPipelineRunEmptyInput(t *testing.T) {
	pipeline := NewPipeline(&fakeLookup{})
	items := pipeline.Run(context.Background(), nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
