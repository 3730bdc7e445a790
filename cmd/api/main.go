package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harriot/experience-engine/internal/app"
	"github.com/harriot/experience-engine/internal/cache"
	"github.com/harriot/experience-engine/internal/clock"
	"github.com/harriot/experience-engine/internal/config"
	"github.com/harriot/experience-engine/internal/metrics"
	"github.com/harriot/experience-engine/internal/source"
	"github.com/harriot/experience-engine/internal/storage/postgres"
	redisstore "github.com/harriot/experience-engine/internal/storage/redis"
	transporthttp "github.com/harriot/experience-engine/internal/transport/http"
	"github.com/harriot/experience-engine/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	if err := godotenv.Load(); err != nil {
		logger.Printf("WARN: .env not found, using process environment")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = parseCSV(origins)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Event sources. Adapters without credentials stay registered but
	// disabled; aggregation degrades to the synthetic set.
	srcs := make([]source.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		s, err := source.NewFromConfig(sc)
		if err != nil {
			log.Fatalf("build source %q: %v", sc.Type, err)
		}
		srcs = append(srcs, s)
		logger.Printf("configured source: %s enabled=%t", s.Name(), s.Enabled())
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	clk := clock.NewSystem()
	aggregator := app.NewAggregator(srcs, logger, m)
	resultCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL, clk)
	eventSvc := app.NewEventService(aggregator, resultCache, m)
	pricingSvc := app.NewPricingService(eventSvc, logger, m)
	offerSvc := app.NewOfferService()

	// The traveler store is optional: pricing works without it, the
	// audience endpoint answers 503.
	var audienceSvc *app.AudienceService
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(startupCtx, dbURL)
		if err != nil {
			log.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(startupCtx); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		if err := migrations.Apply(startupCtx, pool); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		audienceSvc = app.NewAudienceService(postgres.NewTravelerRepository(pool))
	} else {
		logger.Printf("WARN: DATABASE_URL not set, audience endpoints disabled")
	}

	var campaignLog app.CampaignLog = app.NewMemoryCampaignLog()
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     redisURL,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(startupCtx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		defer client.Close()
		campaignLog = redisstore.NewCampaignLog(client)
	} else {
		logger.Printf("WARN: REDIS_URL not set, campaign log kept in memory")
	}
	campaignSvc := app.NewCampaignService(campaignLog, clk, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/event-pricing", transporthttp.HandleEventPricing(pricingSvc))
	mux.Handle("/events/", transporthttp.HandleCityEvents(eventSvc, clk))
	mux.Handle("/generate-offer", transporthttp.HandleGenerateOffer(offerSvc))
	mux.Handle("/campaigns/send", transporthttp.HandleSendCampaign(campaignSvc))
	// Typed-nil guard: hand the handler an untyped nil when the store is absent.
	audienceHandler := transporthttp.HandleAudience(nil)
	if audienceSvc != nil {
		audienceHandler = transporthttp.HandleAudience(audienceSvc)
	}
	mux.Handle("/campaigns/audiences/q2-business-local", audienceHandler)
	mux.Handle("/", transporthttp.RootHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.Server.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Server.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
