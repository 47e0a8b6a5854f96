package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Bot      BotConfig
	Sweep    SweepConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
}

type DatabaseConfig struct {
	Connection string
}

type BotConfig struct {
	Token      string
	APIBaseURL string
	// GatewayMode selects how updates arrive: "poll" or "webhook".
	GatewayMode    string
	PaymentAccount string
}

type SweepConfig struct {
	Schedule      string
	LookaheadDays int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "3000"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "app.log"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Bot: BotConfig{
			Token:          getEnv("BOT_TOKEN", ""),
			APIBaseURL:     getEnv("BOT_API_BASE_URL", ""),
			GatewayMode:    getEnv("BOT_GATEWAY_MODE", "poll"),
			PaymentAccount: getEnv("PAYMENT_ACCOUNT", ""),
		},
		Sweep: SweepConfig{
			Schedule:      getEnv("SWEEP_SCHEDULE", "@every 24h0m0s"),
			LookaheadDays: getEnvAsInt("SWEEP_LOOKAHEAD_DAYS", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
