package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/auth"
	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/invoice"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/notification"
	"github.com/KromaEnergia/api-faturamento/internal/scheduler"
	"github.com/KromaEnergia/api-faturamento/internal/utils/db"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := config.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectDataBase(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Erro ao conectar no banco")
	}
	if err := models.Migrate(database); err != nil {
		logger.WithError(err).Fatal("Erro no AutoMigrate")
	}

	// Redis é opcional: sem ele o cache fica desligado e os locks são locais
	var rdb *redis.Client
	if cfg.RedisAddress != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			logger.WithError(err).Warn("Redis indisponível, seguindo sem cache")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	m := metrics.New()
	numberer, err := invoice.NewNumberer(cfg.SnowflakeNode)
	if err != nil {
		logger.WithError(err).Fatal("SNOWFLAKE_NODE inválido")
	}

	d := deps{
		DB:          database,
		Cache:       cache.New(rdb, cfg.CacheTTL),
		Locker:      cache.NewLocker(rdb),
		Metrics:     m,
		Tokens:      auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Numberer:    numberer,
		PhoneRegion: cfg.PhoneRegion,
		Horizon:     cfg.HorizonMonths,
	}
	s := buildServices(d)

	if err := s.Operators.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.WithError(err).Fatal("Erro ao criar operador administrador")
	}

	if cfg.CronEnabled {
		jobs := &scheduler.Jobs{
			DB:          database,
			Receivables: s.Receivables,
			Snapshots:   s.Snapshots,
		}
		var phones *notification.Phones
		if sms := notification.NewSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom); sms != nil {
			jobs.SMS = notification.NewMulti(m, sms)
			if len(cfg.AlertPhones) > 0 {
				phones = &notification.Phones{SMS: sms, Phones: cfg.AlertPhones}
			}
		}
		jobs.Team = teamNotifier(m, cfg, phones)

		c, err := scheduler.Start(cfg.Location, jobs)
		if err != nil {
			logger.WithError(err).Fatal("Erro ao iniciar agendador")
		}
		defer c.Stop()
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	}).Handler(newRouter(d, s))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port}).Info("Servidor rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Erro no servidor HTTP")
		}
	}()

	<-ctx.Done()
	logger.Info("Desligando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Erro ao desligar servidor")
	}
}

// teamNotifier junta webhook e SMS de alerta; devolve nil se nenhum estiver configurado
func teamNotifier(m *metrics.Metrics, cfg *config.Config, phones *notification.Phones) notification.Notifier {
	var channels []notification.Notifier
	if wh := notification.NewWebhook(cfg.WebhookURL); wh != nil {
		channels = append(channels, wh)
	}
	if phones != nil {
		channels = append(channels, phones)
	}
	if len(channels) == 0 {
		return nil
	}
	return notification.NewMulti(m, channels...)
}
