package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/webfolio-ai/webfolio/internal/htmlcheck"
	"github.com/webfolio-ai/webfolio/internal/models"
	"github.com/webfolio-ai/webfolio/internal/services"
)

// Analyzer produces a completeness verdict for a candidate document.
type Analyzer interface {
	Analyze(html string) *htmlcheck.CompletionVerdict
}

// Merger stitches a continuation fragment onto a partial document.
type Merger interface {
	Merge(partial, continuation string) string
}

type defaultAnalyzer struct{}

func (defaultAnalyzer) Analyze(html string) *htmlcheck.CompletionVerdict {
	return htmlcheck.Analyze(html)
}

type defaultMerger struct{}

func (defaultMerger) Merge(partial, continuation string) string {
	return htmlcheck.Merge(partial, continuation)
}

// GenerationOrchestrator drives one portfolio generation: initial model call,
// completeness analysis, and the bounded continuation loop. Every failure mode
// resolves to a GenerationResult; no error escapes to the caller.
type GenerationOrchestrator struct {
	generator     services.ITextGenerator
	analyzer      Analyzer
	merger        Merger
	initialPrompt services.IGenerationPromptBuilder
	contPrompt    services.IContinuationPromptBuilder
	injector      services.IImageInjector
	policy        ContinuationPolicy
}

type OrchestratorConfig struct {
	Generator           services.ITextGenerator
	Analyzer            Analyzer
	Merger              Merger
	GenerationPrompts   services.IGenerationPromptBuilder
	ContinuationPrompts services.IContinuationPromptBuilder
	ImageInjector       services.IImageInjector
	Policy              ContinuationPolicy
}

func NewGenerationOrchestrator(cfg OrchestratorConfig) *GenerationOrchestrator {
	analyzer := cfg.Analyzer
	if analyzer == nil {
		analyzer = defaultAnalyzer{}
	}

	merger := cfg.Merger
	if merger == nil {
		merger = defaultMerger{}
	}

	initialPrompt := cfg.GenerationPrompts
	if initialPrompt == nil {
		initialPrompt = services.NewGenerationPromptBuilder()
	}

	contPrompt := cfg.ContinuationPrompts
	if contPrompt == nil {
		contPrompt = services.NewContinuationPromptBuilder()
	}

	injector := cfg.ImageInjector
	if injector == nil {
		injector = services.NewImageInjector()
	}

	policy := cfg.Policy
	if policy == nil {
		policy = NewDefaultContinuationPolicy(DefaultPolicyConfig())
	}

	return &GenerationOrchestrator{
		generator:     cfg.Generator,
		analyzer:      analyzer,
		merger:        merger,
		initialPrompt: initialPrompt,
		contPrompt:    contPrompt,
		injector:      injector,
		policy:        policy,
	}
}

// Generate runs the full state machine for a fresh request.
func (o *GenerationOrchestrator) Generate(ctx context.Context, req models.GenerationRequest) *models.GenerationResult {
	prompt := o.initialPrompt.Build(req)

	doc, err := o.generateWithRetry(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("person", req.Profile.Name).Msg("initial generation failed")
		return &models.GenerationResult{Success: false}
	}

	return o.resolve(ctx, doc, req.Context(), req.Projects)
}

// Continue re-enters the continuation loop for a previously returned partial
// document, for the user-triggered "keep going" action.
func (o *GenerationOrchestrator) Continue(ctx context.Context, partialHTML string, genCtx models.GenerationContext, projects []models.Project) *models.GenerationResult {
	return o.resolve(ctx, partialHTML, genCtx, projects)
}

// resolve analyzes the current document and, while it is incomplete but
// continuable and the policy allows it, extends it through the continuation
// loop. The most recent merged document always wins; earlier candidates are
// never revisited even if a later merge were to score lower.
func (o *GenerationOrchestrator) resolve(ctx context.Context, doc string, genCtx models.GenerationContext, projects []models.Project) *models.GenerationResult {
	current := doc
	verdict := o.analyzer.Analyze(current)
	attempts := 0

	for {
		if verdict.IsComplete {
			return o.complete(current, verdict, attempts, projects)
		}
		if !verdict.CanContinue {
			// Too short or too malformed to resume from; another call
			// cannot improve the outcome.
			log.Warn().
				Str("person", genCtx.PersonName).
				Int("score", verdict.EstimatedCompletion).
				Msg("document incomplete and not continuable")
			return incompleteResult(current, verdict, attempts)
		}
		if !o.policy.ShouldContinue(attempts, verdict) {
			break
		}

		attempts++
		log.Info().
			Str("person", genCtx.PersonName).
			Int("attempt", attempts).
			Int("score", verdict.EstimatedCompletion).
			Int("issues", len(verdict.Issues)).
			Msg("starting continuation attempt")

		fragment, err := o.generateWithRetry(ctx, o.contPrompt.Build(current, genCtx))
		if err != nil {
			log.Error().Err(err).Int("attempt", attempts).Msg("continuation call failed")
			return incompleteResult(current, verdict, attempts)
		}

		current = o.merger.Merge(current, fragment)
		verdict = o.analyzer.Analyze(current)
	}

	log.Warn().
		Str("person", genCtx.PersonName).
		Int("attempts", attempts).
		Int("score", verdict.EstimatedCompletion).
		Msg("continuation attempts exhausted")
	return incompleteResult(current, verdict, attempts)
}

func (o *GenerationOrchestrator) complete(doc string, verdict *htmlcheck.CompletionVerdict, attempts int, projects []models.Project) *models.GenerationResult {
	return &models.GenerationResult{
		Success:          true,
		HTML:             o.injector.Inject(doc, projects),
		CompletionStatus: verdict,
		AttemptsMade:     attempts,
	}
}

func incompleteResult(doc string, verdict *htmlcheck.CompletionVerdict, attempts int) *models.GenerationResult {
	return &models.GenerationResult{
		Success:          false,
		Incomplete:       doc != "",
		PartialHTML:      doc,
		CompletionStatus: verdict,
		AttemptsMade:     attempts,
	}
}

// generateWithRetry performs one logical model call, retrying transient
// failures up to the policy ceiling with a fixed delay between attempts. The
// context is checked before every call and before every delay.
func (o *GenerationOrchestrator) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= o.policy.MaxAttempts(); attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		raw, err := o.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return services.StripMarkdownFences(raw), nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("model call failed")

		if attempt < o.policy.MaxAttempts() {
			if err := sleepContext(ctx, o.policy.RetryDelay()); err != nil {
				return "", err
			}
		}
	}
	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
