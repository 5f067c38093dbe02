// ejournal/config/gemini.go

package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// NewGeminiModel инициализирует клиент Gemini для черновой генерации
// расписания. Возвращает nil без ошибки, если ключ не задан: функция
// опциональная, сервер работает и без неё.
func NewGeminiModel(ctx context.Context, apiKey string) (*genai.GenerativeModel, error) {
	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY не задан, генерация расписания отключена.")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}

	slog.Info("Gemini API client initialized successfully.")
	return client.GenerativeModel("gemini-1.5-flash"), nil
}
