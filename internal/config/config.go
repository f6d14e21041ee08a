// Package config загружает конфигурацию сервиса из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"90s"`
	// Доверять X-Real-IP/X-Forwarded-For. Включать только за своим прокси,
	// иначе клиент подставит любой адрес и обойдёт лимит запросов.
	HTTPTrustProxy bool `envconfig:"HTTP_TRUST_PROXY" default:"false"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"scoreboard"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"sudoku"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Единый часовой пояс для всех календарных расчётов (стрики, ежедневная задача).
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	// --- Generator ---
	// Путь к бинарнику солвера, который умеет `--generate [сложность]`.
	GeneratorPath    string        `envconfig:"GENERATOR_PATH" default:"solver"`
	GeneratorTimeout time.Duration `envconfig:"GENERATOR_TIMEOUT" default:"30s"`
	// Общий срок на выпуск задачи дня: генерация плюс запись в базу.
	DailyIssueTimeout time.Duration `envconfig:"DAILY_ISSUE_TIMEOUT" default:"60s"`

	// --- Auth ---
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	AuthMaxFailedLogins int           `envconfig:"AUTH_MAX_FAILED_LOGINS" default:"3"`
	AuthLockoutWindow   time.Duration `envconfig:"AUTH_LOCKOUT_WINDOW" default:"1h"`

	// --- Leaderboard ---
	LeaderboardDefaultLimit int `envconfig:"LEADERBOARD_DEFAULT_LIMIT" default:"10"`
	LeaderboardMaxLimit     int `envconfig:"LEADERBOARD_MAX_LIMIT" default:"100"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureDailyEnabled   bool `envconfig:"FEATURE_DAILY_ENABLED" default:"true"`
	FeatureStreaksEnabled bool `envconfig:"FEATURE_STREAKS_ENABLED" default:"true"`
	// Генерировать ежедневную задачу кроном в полночь, а не по первому запросу.
	FeaturePreissueDaily bool `envconfig:"FEATURE_PREISSUE_DAILY" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR не задан")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.GeneratorPath == "" {
		return fmt.Errorf("GENERATOR_PATH не задан")
	}
	if c.GeneratorTimeout <= 0 {
		return fmt.Errorf("GENERATOR_TIMEOUT должен быть > 0")
	}
	if c.DailyIssueTimeout < c.GeneratorTimeout {
		return fmt.Errorf("DAILY_ISSUE_TIMEOUT не может быть меньше GENERATOR_TIMEOUT")
	}
	if c.HTTPReadTimeout <= 0 || c.HTTPWriteTimeout <= c.DailyIssueTimeout {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT должен быть больше DAILY_ISSUE_TIMEOUT, HTTP_READ_TIMEOUT > 0")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL должен быть > 0")
	}
	if c.AuthMaxFailedLogins <= 0 {
		return fmt.Errorf("AUTH_MAX_FAILED_LOGINS должен быть > 0")
	}
	if c.LeaderboardDefaultLimit <= 0 || c.LeaderboardDefaultLimit > c.LeaderboardMaxLimit {
		return fmt.Errorf("некорректные LEADERBOARD_DEFAULT_LIMIT/LEADERBOARD_MAX_LIMIT")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("некорректные RATE_LIMIT_REQUESTS/RATE_LIMIT_WINDOW")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
