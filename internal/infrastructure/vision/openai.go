package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/sashabaranov/go-openai"
)

// gpt-4o-mini 的单价 (USD / token)，用于成本估算
const (
	inputTokenPrice  = 0.15 / 1_000_000
	outputTokenPrice = 0.60 / 1_000_000
)

type GPTClient struct {
	modelName string
	client    *openai.Client
}

func NewGPTClient(apiKey, baseURL, modelName string) *GPTClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &GPTClient{
		modelName: modelName,
		client:    openai.NewClientWithConfig(config),
	}
}

// visionPayload 模型输出协议，见 model.VisionSystemPrompt
type visionPayload struct {
	Items []model.RawFoodObservation `json:"items"`
}

// AnalyzePlate 把整张餐盘照片交给多模态模型识别
func (g *GPTClient) AnalyzePlate(ctx context.Context, image []byte, plateSizeCM float64) (*PlateAnalysis, error) {
	userText := "Analyze this meal photo."
	if plateSizeCM > 0 {
		userText = fmt.Sprintf("Analyze this meal photo. The plate diameter is %.0f cm.", plateSizeCM)
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	req := openai.ChatCompletionRequest{
		Model: g.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: model.VisionSystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userText},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1, // 低温有助于 JSON 格式稳定
		MaxTokens:   1000,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrUnparseable
	}

	raw, err := extractJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	var payload visionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, ErrUnparseable
	}

	return &PlateAnalysis{
		Items:     payload.Items,
		ModelName: g.modelName,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
			CostUSD: float64(resp.Usage.PromptTokens)*inputTokenPrice +
				float64(resp.Usage.CompletionTokens)*outputTokenPrice,
		},
	}, nil
}

// extractJSON 从模型输出里抠出 JSON 文本
// 模型偶尔不听话，把 JSON 包在 ```json 代码栅栏里，先剥掉；
// 还不行就找最外层的 {...} 再试一次；都失败才算致命错误
func extractJSON(content string) (string, error) {
	t := strings.TrimSpace(content)

	if strings.HasPrefix(t, "```") {
		// 去掉第一行的 ``` 或 ```json
		if idx := strings.Index(t, "\n"); idx >= 0 {
			t = t[idx+1:]
		}
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
		t = strings.TrimSpace(t)
	}

	if json.Valid([]byte(t)) {
		return t, nil
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		candidate := t[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	return "", ErrUnparseable
}
