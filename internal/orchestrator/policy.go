package orchestrator

import (
	"time"

	"github.com/webfolio-ai/webfolio/internal/htmlcheck"
)

// ContinuationPolicy bounds the continuation loop. It decides how many rounds
// the orchestrator may spend and how long to wait between failed model calls.
// It cannot override the CanContinue gate; that is enforced by the
// orchestrator itself.
type ContinuationPolicy interface {
	ShouldContinue(attemptsMade int, verdict *htmlcheck.CompletionVerdict) bool
	MaxAttempts() int
	RetryDelay() time.Duration
}

type PolicyConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		MaxAttempts: 2,
		RetryDelay:  time.Second,
	}
}

type DefaultContinuationPolicy struct {
	config PolicyConfig
}

func NewDefaultContinuationPolicy(config PolicyConfig) *DefaultContinuationPolicy {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultPolicyConfig().MaxAttempts
	}
	if config.RetryDelay < 0 {
		config.RetryDelay = DefaultPolicyConfig().RetryDelay
	}
	return &DefaultContinuationPolicy{config: config}
}

func (p *DefaultContinuationPolicy) ShouldContinue(attemptsMade int, verdict *htmlcheck.CompletionVerdict) bool {
	if verdict == nil || verdict.IsComplete || !verdict.CanContinue {
		return false
	}
	return attemptsMade < p.config.MaxAttempts
}

func (p *DefaultContinuationPolicy) MaxAttempts() int {
	return p.config.MaxAttempts
}

func (p *DefaultContinuationPolicy) RetryDelay() time.Duration {
	return p.config.RetryDelay
}

// NeverContinuePolicy ships whatever the first call produced. Useful for
// previews and tests.
type NeverContinuePolicy struct{}

func NewNeverContinuePolicy() *NeverContinuePolicy {
	return &NeverContinuePolicy{}
}

func (p *NeverContinuePolicy) ShouldContinue(attemptsMade int, verdict *htmlcheck.CompletionVerdict) bool {
	return false
}

func (p *NeverContinuePolicy) MaxAttempts() int {
	return 1
}

func (p *NeverContinuePolicy) RetryDelay() time.Duration {
	return 0
}
