package db

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDataBase abre a conexão com o Postgres. Credenciais vêm do ambiente
// ou, na falta delas, do Secrets Manager.
func ConnectDataBase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var sslMode string
	if cfg.DBSSLDisable {
		sslMode = " sslmode=disable"
	}
	username, password, err := retrieveCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", cfg.DBHost, username, password, cfg.DBName, cfg.DBPort, sslMode)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		config.LogError(config.GetLogger(), "db", "ConnectDataBase", "abrindo conexão", cfg.DBHost, err)
		return nil, err
	}

	if cfg.DBTracing {
		if err := database.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.DBName))); err != nil {
			return nil, fmt.Errorf("registrando otelgorm: %w", err)
		}
	}

	return database, nil
}
