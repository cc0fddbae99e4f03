package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config reúne tudo que o serviço lê do ambiente
type Config struct {
	Port string

	DBHost       string
	DBPort       uint
	DBName       string
	DBUser       string
	DBPassword   string
	DBSecretID   string
	DBSSLDisable bool
	DBTracing    bool

	RedisAddress  string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string
	LogLevel    string

	// Operador admin criado no primeiro boot, se a tabela estiver vazia
	AdminEmail    string
	AdminPassword string

	WebhookURL       string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	AlertPhones      []string

	PhoneRegion   string
	HorizonMonths int
	SnowflakeNode int64
	CronEnabled   bool
	Location      *time.Location
}

// Load lê o .env (se existir) e monta a configuração
func Load() (*Config, error) {
	// .env é opcional em produção
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBName:           getEnv("DB_NAME", "faturamento"),
		DBUser:           os.Getenv("DB_USERNAME"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBSecretID:       os.Getenv("DB_SECRET_ID"),
		DBSSLDisable:     os.Getenv("DB_SSL_MODE_DISABLE") == "true",
		DBTracing:        os.Getenv("DB_TRACING") == "true",
		RedisAddress:     os.Getenv("REDIS_ADDRESS"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_FROM_NUMBER"),
		AlertPhones:      splitList(os.Getenv("ALERT_PHONES")),
		PhoneRegion:      getEnv("DEFAULT_PHONE_REGION", "BR"),
		CronEnabled:      getEnv("CRON_ENABLED", "true") == "true",
	}

	port, err := strconv.ParseUint(getEnv("DB_PORT", "5432"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("DB_PORT inválido: %w", err)
	}
	cfg.DBPort = uint(port)

	minutes, err := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "5"))
	if err != nil || minutes < 0 {
		return nil, fmt.Errorf("CACHE_TTL_MINUTES inválido: %q", os.Getenv("CACHE_TTL_MINUTES"))
	}
	cfg.CacheTTL = time.Duration(minutes) * time.Minute
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL inválido: %w", err)
	}
	if cfg.HorizonMonths, err = strconv.Atoi(getEnv("SCHEDULE_HORIZON_MONTHS", "12")); err != nil || cfg.HorizonMonths <= 0 {
		return nil, fmt.Errorf("SCHEDULE_HORIZON_MONTHS inválido: %q", os.Getenv("SCHEDULE_HORIZON_MONTHS"))
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "America/Sao_Paulo")); err != nil {
		return nil, fmt.Errorf("TIMEZONE inválido: %w", err)
	}
	if cfg.SnowflakeNode, err = strconv.ParseInt(getEnv("SNOWFLAKE_NODE", "1"), 10, 64); err != nil {
		return nil, fmt.Errorf("SNOWFLAKE_NODE inválido: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET não definido")
	}

	SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
