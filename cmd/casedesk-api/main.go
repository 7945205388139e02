package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BearBump/CaseDesk/config"
	"github.com/BearBump/CaseDesk/internal/api/dashapi"
	"github.com/BearBump/CaseDesk/internal/broker/kafka"
	"github.com/BearBump/CaseDesk/internal/cache/rediscache"
	"github.com/BearBump/CaseDesk/internal/derive"
	"github.com/BearBump/CaseDesk/internal/integrations/gemini"
	"github.com/BearBump/CaseDesk/internal/integrations/track17"
	track17fake "github.com/BearBump/CaseDesk/internal/integrations/track17/fake"
	"github.com/BearBump/CaseDesk/internal/services/advisor"
	"github.com/BearBump/CaseDesk/internal/services/cases"
	"github.com/BearBump/CaseDesk/internal/services/catalog"
	"github.com/BearBump/CaseDesk/internal/services/shipments"
	"github.com/BearBump/CaseDesk/internal/storage/airbase"
)

func main() {
	// .env для локального запуска; в проде переменные приходят из окружения.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	httpAddr := cfg.CaseDesk.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	topic := cfg.Kafka.CaseUpdatedTopicName
	if topic == "" {
		topic = "cases.updated"
	}
	catalogTTL := time.Duration(cfg.CaseDesk.CatalogCacheTTLSeconds) * time.Second
	if catalogTTL <= 0 {
		catalogTTL = 10 * time.Minute
	}

	policy := derive.Policy{
		StaleAfter:    time.Duration(cfg.CaseDesk.TrackingStaleHours) * time.Hour,
		OverdueAfter:  time.Duration(cfg.CaseDesk.CaseOverdueHours) * time.Hour,
		CriticalAfter: time.Duration(cfg.CaseDesk.CaseCriticalHours) * time.Hour,
	}

	if cfg.Airbase.APIKey == "" || cfg.Airbase.BaseID == "" {
		panic("airbase api_key and base_id are required")
	}
	store := airbase.New(cfg.Airbase.BaseURL, cfg.Airbase.APIKey, cfg.Airbase.BaseID)
	casesRepo := airbase.NewCasesRepo(store)
	msgsRepo := airbase.NewMessagesRepo(store)
	feedbackRepo := airbase.NewFeedbackRepo(store)
	ordersRepo := airbase.NewOrdersRepo(store)
	storesRepo := airbase.NewStoresRepo(store)
	playbooksRepo := airbase.NewPlaybooksRepo(store)

	var redisAddr string
	var limiter shipments.RateLimiter
	if cfg.Redis.Host != "" {
		redisAddr = cfg.Redis.Addr()
		limiter = rediscache.NewRateLimiter(redisAddr)
	}
	// Без redis кэш деградирует до no-op, каталог ходит прямо в стор.
	bytesCache := rediscache.New(redisAddr)

	var producer cases.Publisher
	if cfg.Kafka.Host != "" {
		producer = kafka.NewProducer([]string{cfg.Kafka.Addr()})
	}

	// Без ключа провайдера работаем на детерминированной заглушке.
	var provider shipments.ProviderClient
	if cfg.Track17.APIKey != "" {
		provider = track17.New(cfg.Track17.BaseURL, cfg.Track17.APIKey)
	} else {
		provider = track17fake.New()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gen, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		panic(fmt.Sprintf("gemini client: %v", err))
	}

	catalogSvc := catalog.New(storesRepo, playbooksRepo, bytesCache, catalogTTL)
	casesSvc := cases.New(casesRepo, msgsRepo, feedbackRepo, ordersRepo, producer, topic, policy)
	shipmentsSvc := shipments.New(provider, limiter, int64(cfg.Track17.RateLimitPerMinute), time.Minute, policy)
	advisorSvc := advisor.New(gen, casesRepo, msgsRepo, ordersRepo, catalogSvc, policy)

	handler := dashapi.New(casesSvc, shipmentsSvc, advisorSvc)

	if err := runServer(ctx, serverOpts{
		httpAddr:    httpAddr,
		swaggerPath: os.Getenv("swaggerPath"),
	}, handler); err != nil && err != context.Canceled {
		panic(err)
	}
}
