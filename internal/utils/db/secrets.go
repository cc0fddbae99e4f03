package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func retrieveCredentials(ctx context.Context, cfg *config.Config) (string, string, error) {
	if cfg.DBUser != "" && cfg.DBPassword != "" {
		return cfg.DBUser, cfg.DBPassword, nil
	}
	if cfg.DBSecretID == "" {
		return "", "", fmt.Errorf("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("carregando configuração AWS: %w", err)
	}
	secrets := secretsmanager.NewFromConfig(awsCfg)

	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.DBSecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("lendo segredo %s: %w", cfg.DBSecretID, err)
	}
	return parseCredentials(aws.ToString(result.SecretString))
}

func parseCredentials(raw string) (string, string, error) {
	var secret Credentials
	if err := json.Unmarshal([]byte(raw), &secret); err != nil {
		return "", "", fmt.Errorf("segredo com formato inválido: %w", err)
	}
	if secret.Username == "" || secret.Password == "" {
		return "", "", fmt.Errorf("segredo sem username/password")
	}
	return secret.Username, secret.Password, nil
}
