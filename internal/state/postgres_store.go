package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/webfolio-ai/webfolio/internal/models"
)

type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connectionString)))

	db := bun.NewDB(sqldb, pgdialect.New())
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	store := &PostgresStore{db: db}

	ctx := context.Background()
	if err := store.InitializeDatabase(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) InitializeDatabase(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*models.PortfolioDB)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create portfolios table: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*models.PortfolioDB)(nil)).
		Index("idx_portfolios_status").
		Column("status").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create status index: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*models.PortfolioDB)(nil)).
		Index("idx_portfolios_created_at").
		Column("created_at").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create created_at index: %w", err)
	}

	return nil
}

func (s *PostgresStore) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	row := models.PortfolioFromApp(p)
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	_, err := s.db.NewInsert().Model(row).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	row := new(models.PortfolioDB)
	err := s.db.NewSelect().
		Model(row).
		Where("portfolio_id = ?", portfolioID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio %s not found", portfolioID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return row.ToPortfolio(), nil
}

func (s *PostgresStore) ListPortfolios(ctx context.Context, offset, limit int) ([]*models.Portfolio, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []*models.PortfolioDB
	err := s.db.NewSelect().
		Model(&rows).
		ExcludeColumn("html", "partial_html", "request").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	portfolios := make([]*models.Portfolio, 0, len(rows))
	for _, row := range rows {
		portfolios = append(portfolios, row.ToPortfolio())
	}
	return portfolios, nil
}

func (s *PostgresStore) SetStatus(ctx context.Context, portfolioID string, status models.PortfolioStatus) error {
	_, err := s.db.NewUpdate().
		Model((*models.PortfolioDB)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("portfolio_id = ?", portfolioID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveResult(ctx context.Context, portfolioID string, result *models.GenerationResult) error {
	q := s.db.NewUpdate().
		Model((*models.PortfolioDB)(nil)).
		Set("status = ?", models.StatusFor(result)).
		Set("attempts_made = ?", result.AttemptsMade).
		Set("updated_at = ?", time.Now()).
		Where("portfolio_id = ?", portfolioID)

	if result.Success {
		q = q.Set("html = ?", result.HTML).Set("partial_html = NULL")
	} else if result.Incomplete {
		q = q.Set("partial_html = ?", result.PartialHTML)
	}
	if result.CompletionStatus != nil {
		issues, err := json.Marshal(result.CompletionStatus.Issues)
		if err != nil {
			return fmt.Errorf("failed to marshal issues: %w", err)
		}
		q = q.Set("completion_score = ?", result.CompletionStatus.EstimatedCompletion).
			Set("issues = ?", string(issues))
	}

	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

func (s *PostgresStore) IncrementGenerationCost(ctx context.Context, portfolioID string, tokensIn, tokensOut int) error {
	_, err := s.db.NewUpdate().
		Model((*models.PortfolioDB)(nil)).
		Set("tokens_in = tokens_in + ?", tokensIn).
		Set("tokens_out = tokens_out + ?", tokensOut).
		Set("updated_at = ?", time.Now()).
		Where("portfolio_id = ?", portfolioID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment generation cost: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
