package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/BearBump/CaseDesk/internal/cache"
	"github.com/BearBump/CaseDesk/internal/models"
)

type StoresRepository interface {
	GetByCode(ctx context.Context, storeCode string) (*models.Store, error)
	ListAll(ctx context.Context) ([]*models.Store, error)
}

type PlaybooksRepository interface {
	GetByCategory(ctx context.Context, category string) (*models.Playbook, error)
	ListAll(ctx context.Context) ([]*models.Playbook, error)
}

// Service — справочные таблицы (магазины, плейбуки). Меняются редко,
// поэтому читаются через кэш: стор — внешний HTTP API с квотами.
type Service struct {
	stores    StoresRepository
	playbooks PlaybooksRepository
	cache     cache.BytesCache
	ttl       time.Duration
}

func New(stores StoresRepository, playbooks PlaybooksRepository, c cache.BytesCache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{stores: stores, playbooks: playbooks, cache: c, ttl: ttl}
}

func (s *Service) StoreByCode(ctx context.Context, storeCode string) (*models.Store, error) {
	key := "store:" + storeCode
	var st models.Store
	if s.cacheGet(ctx, key, &st) {
		return &st, nil
	}

	found, err := s.stores.GetByCode(ctx, storeCode)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, found)
	return found, nil
}

func (s *Service) PlaybookByCategory(ctx context.Context, category string) (*models.Playbook, error) {
	key := "playbook:" + category
	var pb models.Playbook
	if s.cacheGet(ctx, key, &pb) {
		return &pb, nil
	}

	found, err := s.playbooks.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, found)
	return found, nil
}

func (s *Service) ListStores(ctx context.Context) ([]*models.Store, error) {
	return s.stores.ListAll(ctx)
}

func (s *Service) ListPlaybooks(ctx context.Context) ([]*models.Playbook, error) {
	return s.playbooks.ListAll(ctx)
}

// Кэш — лучшее усилие: любой его сбой деградирует до похода в стор.
func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	if s.ttl <= 0 {
		return false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("catalog cache get", "key", key, "error", err.Error())
		return false
	}
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.ttl <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		slog.Warn("catalog cache set", "key", key, "error", err.Error())
	}
}
