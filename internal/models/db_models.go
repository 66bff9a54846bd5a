package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Portfolio is the application-level view of one generation job.
type Portfolio struct {
	PortfolioID     string             `json:"portfolio_id"`
	PersonName      string             `json:"person_name"`
	Title           string             `json:"title"`
	Status          PortfolioStatus    `json:"status"`
	Request         *GenerationRequest `json:"request,omitempty"`
	HTML            *string            `json:"html,omitempty"`
	PartialHTML     *string            `json:"partial_html,omitempty"`
	CompletionScore int                `json:"completion_score"`
	Issues          []string           `json:"issues,omitempty"`
	AttemptsMade    int                `json:"attempts_made"`
	TokensIn        int                `json:"tokens_in"`
	TokensOut       int                `json:"tokens_out"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type PortfolioDB struct {
	bun.BaseModel `bun:"table:portfolios,alias:p"`

	PortfolioID     string             `bun:"portfolio_id,pk" json:"portfolio_id"`
	PersonName      string             `bun:"person_name,notnull" json:"person_name"`
	Title           string             `bun:"title,notnull" json:"title"`
	Status          PortfolioStatus    `bun:"status,notnull,default:'PENDING'" json:"status"`
	Request         *GenerationRequest `bun:"request,type:jsonb" json:"request"`
	HTML            *string            `bun:"html" json:"html,omitempty"`
	PartialHTML     *string            `bun:"partial_html" json:"partial_html,omitempty"`
	CompletionScore int                `bun:"completion_score" json:"completion_score"`
	Issues          []string           `bun:"issues,type:jsonb" json:"issues,omitempty"`
	AttemptsMade    int                `bun:"attempts_made" json:"attempts_made"`
	TokensIn        int                `bun:"tokens_in" json:"tokens_in"`
	TokensOut       int                `bun:"tokens_out" json:"tokens_out"`
	CreatedAt       time.Time          `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time          `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (p *PortfolioDB) ToPortfolio() *Portfolio {
	return &Portfolio{
		PortfolioID:     p.PortfolioID,
		PersonName:      p.PersonName,
		Title:           p.Title,
		Status:          p.Status,
		Request:         p.Request,
		HTML:            p.HTML,
		PartialHTML:     p.PartialHTML,
		CompletionScore: p.CompletionScore,
		Issues:          p.Issues,
		AttemptsMade:    p.AttemptsMade,
		TokensIn:        p.TokensIn,
		TokensOut:       p.TokensOut,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func PortfolioFromApp(p *Portfolio) *PortfolioDB {
	return &PortfolioDB{
		PortfolioID:     p.PortfolioID,
		PersonName:      p.PersonName,
		Title:           p.Title,
		Status:          p.Status,
		Request:         p.Request,
		HTML:            p.HTML,
		PartialHTML:     p.PartialHTML,
		CompletionScore: p.CompletionScore,
		Issues:          p.Issues,
		AttemptsMade:    p.AttemptsMade,
		TokensIn:        p.TokensIn,
		TokensOut:       p.TokensOut,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
