package shipments

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/CaseDesk/internal/derive"
	"github.com/BearBump/CaseDesk/internal/integrations/track17"
	"github.com/BearBump/CaseDesk/internal/models"
)

type ProviderClient interface {
	Register(ctx context.Context, numbers []string) ([]string, []track17.Rejection, error)
	GetTrackInfo(ctx context.Context, trackingNumber string) (*models.TrackingSnapshot, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

const rateLimitKey = "rl:track17"

// Service — живые запросы к трекинговому провайдеру. Квота у провайдера
// общая на аккаунт, поэтому лимитер сидит перед каждым вызовом.
type Service struct {
	provider ProviderClient
	limiter  RateLimiter
	limit    int64
	window   time.Duration
	policy   derive.Policy
}

func New(provider ProviderClient, limiter RateLimiter, limit int64, window time.Duration, p derive.Policy) *Service {
	return &Service{
		provider: provider,
		limiter:  limiter,
		limit:    limit,
		window:   window,
		policy:   p.Normalize(),
	}
}

func (s *Service) Policy() derive.Policy {
	return s.policy
}

// Snapshot возвращает живое состояние трека. Номер, которого провайдер
// ещё не знает, регистрируется на лету и запрашивается повторно один раз.
func (s *Service) Snapshot(ctx context.Context, trackingNumber string) (*models.TrackingSnapshot, error) {
	if trackingNumber == "" {
		return nil, errors.New("trackingNumber is required")
	}
	if err := s.checkLimit(ctx); err != nil {
		return nil, err
	}

	snap, err := s.provider.GetTrackInfo(ctx, trackingNumber)
	if err == nil {
		return snap, nil
	}

	var rej *track17.RejectedError
	if !errors.As(err, &rej) {
		return nil, err
	}

	// Провайдер отклоняет запросы по незарегистрированным номерам.
	accepted, rejected, regErr := s.provider.Register(ctx, []string{trackingNumber})
	if regErr != nil {
		return nil, errors.Wrap(regErr, "register tracking")
	}
	if len(accepted) == 0 {
		if len(rejected) > 0 {
			slog.Warn("tracking register rejected", "number", trackingNumber, "reason", rejected[0].Reason)
		}
		return nil, track17.ErrNotFound
	}

	return s.provider.GetTrackInfo(ctx, trackingNumber)
}

// Facts сводит сохранённые поля заказа и (опционально) живой снапшот.
func (s *Service) Facts(order *models.Order, snapshot *models.TrackingSnapshot, now time.Time) derive.TrackingFacts {
	return derive.Reconcile(order, snapshot, now, s.policy)
}

func (s *Service) checkLimit(ctx context.Context) error {
	if s.limiter == nil || s.limit <= 0 {
		return nil
	}
	ok, n, err := s.limiter.Allow(ctx, rateLimitKey, s.limit, s.window)
	if err != nil {
		// Недоступный лимитер не блокирует запросы.
		slog.Warn("tracking rate limiter", "error", err.Error())
		return nil
	}
	if !ok {
		slog.Warn("tracking rate limit exceeded", "count", n, "limit", s.limit)
		return track17.ErrRateLimited
	}
	return nil
}
