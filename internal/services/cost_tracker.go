package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type contextKey string

const portfolioIDContextKey contextKey = "portfolioID"

func ContextWithPortfolioID(ctx context.Context, portfolioID string) context.Context {
	return context.WithValue(ctx, portfolioIDContextKey, portfolioID)
}

func PortfolioIDFromContext(ctx context.Context) string {
	if v := ctx.Value(portfolioIDContextKey); v != nil {
		if portfolioID, ok := v.(string); ok {
			return portfolioID
		}
	}
	return ""
}

type CostStore interface {
	IncrementGenerationCost(ctx context.Context, portfolioID string, tokensIn, tokensOut int) error
}

type ICostTracker interface {
	AddTokenCost(ctx context.Context, tknIn, tknOut int)
	TokensIn() int
	TokensOut() int
}

// CostTracker accumulates token usage across the initial call and every
// continuation attempt of a generation, and persists it per portfolio when a
// store is attached.
type CostTracker struct {
	mu     sync.RWMutex
	tknIn  int
	tknOut int
	store  CostStore
}

type CostTrackerOption func(*CostTracker) error

func NewCostTracker(opts ...CostTrackerOption) (*CostTracker, error) {
	ct := &CostTracker{}

	for _, opt := range opts {
		if err := opt(ct); err != nil {
			return nil, err
		}
	}

	return ct, nil
}

func WithStore(store CostStore) CostTrackerOption {
	return func(ct *CostTracker) error {
		ct.store = store
		return nil
	}
}

func (c *CostTracker) AddTokenCost(ctx context.Context, tknIn, tknOut int) {
	c.mu.Lock()
	c.tknIn += tknIn
	c.tknOut += tknOut
	c.mu.Unlock()

	portfolioID := PortfolioIDFromContext(ctx)
	if portfolioID != "" && c.store != nil {
		go func() {
			if err := c.store.IncrementGenerationCost(context.Background(), portfolioID, tknIn, tknOut); err != nil {
				log.Error().Err(err).Str("portfolioID", portfolioID).Msg("failed to increment generation cost")
			}
		}()
	}
}

func (c *CostTracker) TokensIn() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tknIn
}

func (c *CostTracker) TokensOut() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tknOut
}
