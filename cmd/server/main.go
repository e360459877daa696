// Command server wires the credit decision pipeline and serves its HTTP
// surface. Dependency selection (live vs mock provider, Postgres vs memory
// stores) happens once here; business logic never branches on process mode.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lendgate/internal/audit"
	"lendgate/internal/credit"
	"lendgate/internal/credit/handler"
	"lendgate/internal/credit/metrics"
	"lendgate/internal/fraud"
	"lendgate/internal/identity"
	"lendgate/internal/identity/provider"
	"lendgate/internal/merchant"
	jwttoken "lendgate/internal/jwt_token"
	"lendgate/internal/platform/config"
	"lendgate/internal/platform/httpserver"
	"lendgate/internal/platform/kafka"
	"lendgate/internal/platform/logger"
	"lendgate/internal/platform/middleware"
	"lendgate/internal/platform/postgres"
	"lendgate/internal/platform/redis"
	"lendgate/internal/policy"
	"lendgate/internal/reference"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Server.ServiceName)
	ctx := context.Background()

	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	cache, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
	}

	// Store selection: Postgres when configured, otherwise memory.
	var (
		refStore interface {
			fraud.ReferenceStore
			credit.HistoryStore
		}
		merchants   merchant.Directory
		policyStore policy.Store
		auditStore  audit.Store
	)
	if pool != nil {
		refStore = reference.NewPostgresStore(pool)
		merchants = merchant.NewPostgresDirectory(pool)
		policyStore = policy.NewPostgresStore(pool)
		auditStore = audit.NewPostgresStore(pool)
	} else {
		memory := reference.NewInMemoryStore()
		directory := merchant.NewInMemoryDirectory()
		seedDevData(memory, directory)
		refStore = memory
		merchants = directory
		policyStore = policy.NewInMemoryStore()
		auditStore = audit.NewInMemoryStore()
		log.Warn("postgres not configured, using in-memory stores")
	}
	if cache != nil {
		refStore = reference.WithVelocity(refStore, reference.NewRedisVelocity(cache))
		policyStore = policy.NewCachedStore(policyStore, cache, 5*time.Minute, log)
	}

	var idProvider provider.Provider
	switch cfg.Identity.Mode {
	case config.ProviderModeLive:
		idProvider = provider.NewHTTPClient(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.Identity.Timeout)
	default:
		idProvider = provider.NewMock(50 * time.Millisecond)
		log.Warn("using mock identity provider")
	}

	detector, err := fraud.NewDetector(refStore, log)
	if err != nil {
		log.Error("fraud detector init failed", "error", err)
		os.Exit(1)
	}

	auditor := audit.NewPublisher(auditStore, log)
	if producer != nil {
		auditor = auditor.WithKafka(producer, cfg.Kafka.AuditTopic)
	}

	service, err := credit.NewService(
		merchants,
		identity.NewVerifier(idProvider, log, cfg.Identity.Timeout),
		detector,
		policyStore,
		refStore,
		auditor,
		log,
		metrics.New(),
	)
	if err != nil {
		log.Error("credit service init failed", "error", err)
		os.Exit(1)
	}

	checks := map[string]handler.HealthCheck{}
	if pool != nil {
		checks["postgres"] = pool.Health
	}
	if cache != nil {
		checks["redis"] = cache.Health
	}

	creditHandler := handler.New(service, log, checks)
	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtService, log))
		r.Post("/credit/eligibility-check", creditHandler.HandleEligibilityCheck)
	})
	router.Post("/credit/health", creditHandler.HandleHealth)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Server.Addr, "identity_mode", string(cfg.Identity.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// seedDevData registers a merchant, agent, and customer profile so the
// mock/in-memory configuration serves an end-to-end flow out of the box.
func seedDevData(store *reference.InMemoryStore, directory *merchant.InMemoryDirectory) {
	directory.PutMerchant(merchant.Merchant{
		ID:             "merchant-dev",
		Name:           "Dev Gadget Store",
		Status:         merchant.StatusActive,
		PolicyApproved: true,
	})
	directory.PutAgent(merchant.Agent{
		ID:         "agent-dev",
		MerchantID: "merchant-dev",
		FullName:   "Dev Agent",
		Role:       merchant.RoleAgent,
	})
	store.SeedPhoneAge("08031234567", 24)
	store.SeedIncome("12345678901", 500_000)
	store.SeedMerchantStats("merchant-dev", credit.MerchantStats{DefaultRate: 0.04, Volume: 300})
}
