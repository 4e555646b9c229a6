package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

type Config struct {
	Binance BinanceConfig
	Engine  EngineConfig
	Metrics MetricsConfig
}

type BinanceConfig struct {
	WsURL     string
	RestURL   string
	APIKey    string
	APISecret string

	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

type EngineConfig struct {
	Symbols         []string
	QuoteBufferSize int
}

type MetricsConfig struct {
	ListenAddr string
}

func Load() *Config {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	return &Config{
		Binance: BinanceConfig{
			WsURL:             getEnv("BINANCE_WS_URL", "wss://fstream.binance.com/ws"),
			RestURL:           getEnv("BINANCE_REST_URL", "https://fapi.binance.com/fapi"),
			APIKey:            getEnv("BINANCE_API_KEY", ""),
			APISecret:         getEnv("BINANCE_API_SECRET", ""),
			ReconnectAttempts: getEnvInt("BINANCE_RECONNECT_ATTEMPTS", 5),
			ReconnectDelay:    getEnvDuration("BINANCE_RECONNECT_DELAY", 5*time.Second),
		},
		Engine: EngineConfig{
			Symbols:         getEnvList("ENGINE_SYMBOLS", []string{"BTCUSDT", "ETHUSDT"}),
			QuoteBufferSize: getEnvInt("ENGINE_QUOTE_BUFFER_SIZE", 1000),
		},
		Metrics: MetricsConfig{
			ListenAddr: getEnv("METRICS_LISTEN_ADDR", ":9090"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
