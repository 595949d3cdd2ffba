package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	OpenAIKey   string
	ChatModel   string
	Port        string
	MetricsPort string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		// Fallback quando a tabela modelkeys não tiver a chave
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		ChatModel:   getEnv("CHAT_MODEL", "gpt-4o-mini"),
		Port:        getEnv("PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
