package main

import (
	"context"

	"github.com/ivanoskov/daily_balance_bot/internal/bot"
	"github.com/ivanoskov/daily_balance_bot/internal/config"
	"github.com/ivanoskov/daily_balance_bot/internal/logger"
	"github.com/ivanoskov/daily_balance_bot/internal/storage"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler обрабатывает один webhook-вызов. В serverless-окружении
// состояние процесса не живет между вызовами, поэтому хранилище должно
// быть внешним (supabase или redis, не file).
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.Load()
	if err != nil {
		return errorResponse(err)
	}

	logg := logger.New(logger.Config{Level: cfg.LogLevel, Format: "json"})

	tz, err := cfg.Location()
	if err != nil {
		return errorResponse(err)
	}

	store, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		return errorResponse(err)
	}

	b, err := bot.NewBot(cfg.TelegramToken, store, tz, logg)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
