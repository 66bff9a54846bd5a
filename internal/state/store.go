package state

import (
	"context"

	"github.com/webfolio-ai/webfolio/internal/models"
)

type Store interface {
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, offset, limit int) ([]*models.Portfolio, error)

	SetStatus(ctx context.Context, portfolioID string, status models.PortfolioStatus) error
	SaveResult(ctx context.Context, portfolioID string, result *models.GenerationResult) error
	IncrementGenerationCost(ctx context.Context, portfolioID string, tokensIn, tokensOut int) error

	Close() error
}
