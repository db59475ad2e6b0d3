package app

import (
	"context"
	"fmt"

	"pogomcp/internal/domain"
	"pogomcp/internal/infra/datacache"
)

// Provider is the single data access surface the query tools use. Every
// accessor goes through the cache, so all ~20 tools share one refresh,
// fallback, and error policy instead of reimplementing freshness checks.
type Provider struct {
	cache *datacache.Cache
}

func NewProvider(cache *datacache.Cache) *Provider {
	return &Provider{cache: cache}
}

func records[T any](ctx context.Context, p *Provider, category domain.Category) ([]T, error) {
	snap, err := p.cache.Get(ctx, category)
	if err != nil {
		return nil, err
	}
	typed, ok := snap.Items.([]T)
	if !ok {
		return nil, domain.E(domain.CodeInternal, "provider.records",
			fmt.Sprintf("snapshot for %s holds %T", category, snap.Items), nil)
	}
	return typed, nil
}

func (p *Provider) Events(ctx context.Context) ([]domain.Event, error) {
	return records[domain.Event](ctx, p, domain.CategoryEvents)
}

func (p *Provider) Raids(ctx context.Context) ([]domain.RaidBoss, error) {
	return records[domain.RaidBoss](ctx, p, domain.CategoryRaids)
}

func (p *Provider) Research(ctx context.Context) ([]domain.ResearchTask, error) {
	return records[domain.ResearchTask](ctx, p, domain.CategoryResearch)
}

func (p *Provider) Eggs(ctx context.Context) ([]domain.Egg, error) {
	return records[domain.Egg](ctx, p, domain.CategoryEggs)
}

func (p *Provider) RocketLineups(ctx context.Context) ([]domain.RocketTrainer, error) {
	return records[domain.RocketTrainer](ctx, p, domain.CategoryRocketLineups)
}

func (p *Provider) PromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	return records[domain.PromoCode](ctx, p, domain.CategoryPromoCodes)
}

// Status reports per-category cache state without triggering any reload.
func (p *Provider) Status() []domain.CategoryStatus {
	return p.cache.Status()
}

// ClearCache invalidates one category, or every category when the argument is
// empty or "all". The next access reloads unconditionally.
func (p *Provider) ClearCache(category string) error {
	if category == "" || category == "all" {
		p.cache.InvalidateAll()
		return nil
	}
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return err
	}
	return p.cache.Invalidate(cat)
}
