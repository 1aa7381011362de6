package config

import "os"

type Config struct {
	Port          string
	Env           string
	PostgresURL   string
	RedisAddr     string
	RedisPassword string
	RabbitMQURL   string
	JWTSecret     string
	GCSBucket     string
	GCSProjectID  string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key"),
		GCSBucket:     getEnv("GCS_BUCKET_NAME", "espe-connect"),
		GCSProjectID:  getEnv("GCS_PROJECT_ID", ""),
	}
}

// IsDevelopment gates debug detail in error responses
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
