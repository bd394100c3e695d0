package assist

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"formgate/internal/domain/form"
	"formgate/internal/pkg/ratelimit"
)

// FormProvider resolves the form whose stylesheet is being generated.
type FormProvider interface {
	GetByID(ctx context.Context, id int64) (*form.FormDefinition, error)
}

// Service is the generation gateway: quota check, prompt assembly, provider
// call, output sanitation, history.
type Service struct {
	provider Provider
	forms    FormProvider
	repo     *Repository
	limiter  *ratelimit.Limiter
	logger   *zap.Logger
}

func NewService(provider Provider, forms FormProvider, repo *Repository,
	limiter *ratelimit.Limiter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, forms: forms, repo: repo, limiter: limiter, logger: logger}
}

// Generate produces a sanitized stylesheet for the form. The hourly quota
// is counted per provider, shared across forms.
func (s *Service) Generate(ctx context.Context, formID int64, prompt string) (*GenerationRecord, error) {
	if s.provider == nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	f, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, "assist:"+s.provider.Name())
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	raw, err := s.provider.Generate(ctx, BuildPrompt(f, prompt))
	if err != nil {
		s.logger.Warn("generation failed",
			zap.String("provider", s.provider.Name()), zap.Error(err))
		return nil, err
	}

	rec := &GenerationRecord{
		FormID:       f.ID,
		Prompt:       prompt,
		GeneratedCSS: SanitizeCSS(raw),
		Provider:     s.provider.Name(),
		Model:        s.provider.Model(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		// history is best-effort, the admin still gets the stylesheet
		s.logger.Error("failed to record generation", zap.Error(err))
	}
	return rec, nil
}

// History lists past generations for a form.
func (s *Service) History(ctx context.Context, formID int64, limit int) ([]GenerationRecord, error) {
	return s.repo.History(ctx, formID, limit)
}

// Test sends a trivial prompt to verify credentials and connectivity. Does
// not count against the quota.
func (s *Service) Test(ctx context.Context) error {
	if s.provider == nil {
		return ErrNotConfigured
	}
	_, err := s.provider.Generate(ctx, "Responde únicamente: ok")
	return err
}
