package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config задает настройки процесса: токен, часовой пояс и хранилище
type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required,notEmpty"`

	// Часовой пояс, в котором наступает полночь для переноса баланса
	Timezone string `env:"TIMEZONE" envDefault:"Asia/Yekaterinburg"`

	Storage   string `env:"STORAGE"    envDefault:"file"` // file, supabase или redis
	StateFile string `env:"STATE_FILE" envDefault:"bot_data.json"`

	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load читает конфигурацию из окружения. Файл .env не обязателен: в
// продакшене переменные приходят из окружения напрямую.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location загружает рабочий часовой пояс
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
