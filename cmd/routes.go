package main

import (
	"net/http"

	"github.com/KromaEnergia/api-faturamento/internal/auth"
	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/client"
	"github.com/KromaEnergia/api-faturamento/internal/commission"
	"github.com/KromaEnergia/api-faturamento/internal/contract"
	"github.com/KromaEnergia/api-faturamento/internal/dashboard"
	"github.com/KromaEnergia/api-faturamento/internal/goal"
	"github.com/KromaEnergia/api-faturamento/internal/invoice"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/KromaEnergia/api-faturamento/internal/middleware"
	"github.com/KromaEnergia/api-faturamento/internal/mrr"
	"github.com/KromaEnergia/api-faturamento/internal/operator"
	"github.com/KromaEnergia/api-faturamento/internal/partner"
	"github.com/KromaEnergia/api-faturamento/internal/partnerlink"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/snapshot"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// deps é o que os handlers precisam; cache e metrics podem ser nil
type deps struct {
	DB          *gorm.DB
	Cache       *cache.Cache
	Locker      *cache.Locker
	Metrics     *metrics.Metrics
	Tokens      *auth.TokenIssuer
	Numberer    *invoice.Numberer
	PhoneRegion string
	Horizon     int
}

// services ficam expostos para o agendador reaproveitar
type services struct {
	Receivables *receivable.Service
	Snapshots   *snapshot.Service
	Operators   *operator.Handler
}

func buildServices(d deps) services {
	return services{
		Receivables: receivable.NewService(receivable.NewRepository(d.DB), d.Locker, d.Cache, d.Metrics, d.Horizon),
		Snapshots:   snapshot.NewService(snapshot.NewRepository(d.DB), d.Locker, d.Cache, d.Metrics),
		Operators:   operator.NewHandler(d.DB, d.Tokens),
	}
}

func newRouter(d deps, s services) *mux.Router {
	commissionCalc := commission.NewCalculator(commission.Config{})

	clientHandler := client.NewHandler(client.NewService(d.DB, s.Receivables, d.Cache, d.PhoneRegion))
	mrrHandler := mrr.NewHandler(d.DB, mrr.NewAggregator(mrr.DefaultConfig()))
	receivableHandler := receivable.NewHandler(s.Receivables)
	contractHandler := contract.NewHandler(d.DB, d.Cache)
	partnerHandler := partner.NewHandler(d.DB, commissionCalc, d.Cache, d.PhoneRegion)
	commissionHandler := commission.NewHandler(commission.NewService(commission.NewRepository(d.DB), commissionCalc, d.Locker, d.Cache, d.Metrics))
	linkHandler := partnerlink.NewHandler(d.DB, d.Locker, d.Cache)
	snapshotHandler := snapshot.NewHandler(s.Snapshots)
	invoiceHandler := invoice.NewHandler(invoice.NewService(invoice.NewRepository(d.DB), d.Numberer, d.Locker, d.Cache, d.Metrics))
	goalHandler := goal.NewHandler(goal.NewRepository(d.DB))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(d.DB, d.Cache))
	operatorHandler := s.Operators

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger(d.Metrics))

	// Rotas públicas
	r.HandleFunc("/auth/login", operatorHandler.Login).Methods("POST")
	r.HandleFunc("/healthz", healthz(d.DB)).Methods("GET")
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware(d.Tokens))

	// Operadores (admin)
	api.Handle("/operators", auth.RequireAdmin(http.HandlerFunc(operatorHandler.Create))).Methods("POST")
	api.Handle("/operators", auth.RequireAdmin(http.HandlerFunc(operatorHandler.List))).Methods("GET")

	// Clientes
	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{id}", clientHandler.Get).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientHandler.Delete).Methods("DELETE")

	// MRR
	api.HandleFunc("/mrr", mrrHandler.GetAll).Methods("GET")
	api.HandleFunc("/clients/{id}/mrr", mrrHandler.GetByClient).Methods("GET")

	// Recebíveis
	api.HandleFunc("/clients/{id}/receivables", receivableHandler.List).Methods("GET")
	api.HandleFunc("/clients/{id}/receivables/regenerate", receivableHandler.Regenerate).Methods("POST")
	api.HandleFunc("/clients/{id}/receivables/export", receivableHandler.Export).Methods("GET")
	api.HandleFunc("/receivables/{rid}/status", receivableHandler.UpdateStatus).Methods("PATCH")

	// Contratos e streams
	api.HandleFunc("/clients/{id}/contracts", contractHandler.ListByClient).Methods("GET")
	api.HandleFunc("/clients/{id}/contracts", contractHandler.Create).Methods("POST")
	api.HandleFunc("/contracts/{cid}", contractHandler.Update).Methods("PUT")
	api.HandleFunc("/contracts/{cid}", contractHandler.Delete).Methods("DELETE")
	api.HandleFunc("/contracts/{cid}/terminate", contractHandler.Terminate).Methods("POST")
	api.HandleFunc("/contracts/{cid}/streams", contractHandler.ListStreams).Methods("GET")
	api.HandleFunc("/contracts/{cid}/streams", contractHandler.CreateStream).Methods("POST")
	api.HandleFunc("/streams/{sid}", contractHandler.UpdateStream).Methods("PUT")
	api.HandleFunc("/streams/{sid}", contractHandler.DeleteStream).Methods("DELETE")

	// Parceiros e comissões
	api.HandleFunc("/partners", partnerHandler.List).Methods("GET")
	api.HandleFunc("/partners", partnerHandler.Create).Methods("POST")
	api.HandleFunc("/partners/{id}", partnerHandler.Get).Methods("GET")
	api.HandleFunc("/partners/{id}", partnerHandler.Update).Methods("PUT")
	api.HandleFunc("/partners/{id}", partnerHandler.Delete).Methods("DELETE")
	api.HandleFunc("/partners/{id}/summary", partnerHandler.Summary).Methods("GET")
	api.HandleFunc("/partners/{id}/commission", commissionHandler.Get).Methods("GET")
	api.HandleFunc("/partners/{id}/statements", commissionHandler.ListStatements).Methods("GET")
	api.HandleFunc("/partners/{id}/statements", commissionHandler.GenerateStatement).Methods("POST")
	api.HandleFunc("/partners/{id}/payouts", commissionHandler.ListPayouts).Methods("GET")
	api.HandleFunc("/partners/{id}/payouts", commissionHandler.RecordPayout).Methods("POST")
	api.HandleFunc("/statements/{id}/pay", commissionHandler.PayStatement).Methods("POST")

	// Vínculos cliente-parceiro
	api.HandleFunc("/clients/{id}/partner-links", linkHandler.List).Methods("GET")
	api.HandleFunc("/clients/{id}/partner-links", linkHandler.Create).Methods("POST")
	api.HandleFunc("/partner-links/{id}", linkHandler.Delete).Methods("DELETE")

	// Snapshots (export antes de {month})
	api.HandleFunc("/snapshots/capture", snapshotHandler.Capture).Methods("POST")
	api.HandleFunc("/snapshots/export", snapshotHandler.Export).Methods("GET")
	api.HandleFunc("/snapshots", snapshotHandler.List).Methods("GET")
	api.HandleFunc("/snapshots/{month:[0-9]{4}-[0-9]{2}}", snapshotHandler.Get).Methods("GET")

	// Faturas
	api.HandleFunc("/invoices", invoiceHandler.Create).Methods("POST")
	api.HandleFunc("/invoices/preview", invoiceHandler.Preview).Methods("POST")
	api.HandleFunc("/invoices/{id}", invoiceHandler.Get).Methods("GET")
	api.HandleFunc("/invoices/{id}/payments", invoiceHandler.AddPayment).Methods("POST")
	api.HandleFunc("/clients/{id}/invoices", invoiceHandler.ListByClient).Methods("GET")

	// Metas
	api.HandleFunc("/goals", goalHandler.List).Methods("GET")
	api.HandleFunc("/goals", goalHandler.Create).Methods("POST")
	api.HandleFunc("/goals/preview", goalHandler.Preview).Methods("POST")
	api.HandleFunc("/goals/{id}", goalHandler.Get).Methods("GET")
	api.HandleFunc("/goals/{id}/overrides", goalHandler.UpdateOverrides).Methods("PUT")

	api.HandleFunc("/dashboard", dashboardHandler.Get).Methods("GET")

	return r
}

func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			http.Error(w, "banco indisponível", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
