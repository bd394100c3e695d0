package form

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"formgate/internal/domain/field"
)

// Service handles form business logic.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new form. The slug is taken from the request or derived
// from the name; either way it is made unique with a numeric suffix.
func (s *Service) Create(ctx context.Context, req *CreateFormRequest) (*FormDefinition, error) {
	if err := validateFields(req.Fields); err != nil {
		return nil, err
	}

	base := req.Slug
	if base == "" {
		base = Slugify(req.Name)
	} else {
		base = Slugify(base)
	}

	slug, err := s.uniqueSlug(ctx, base, 0)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
		settings.Normalize()
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	f := &FormDefinition{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Fields:      req.Fields,
		Stylesheet:  req.Stylesheet,
		Settings:    settings,
		Active:      active,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetByRef resolves a form by numeric id or slug, whichever the caller sent.
func (s *Service) GetByRef(ctx context.Context, ref string) (*FormDefinition, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetBySlug(ctx, ref)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*FormDefinition, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateFormRequest) (*FormDefinition, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Slug != nil && Slugify(*req.Slug) != f.Slug {
		slug := Slugify(*req.Slug)
		taken, err := s.repo.SlugExists(ctx, slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		f.Slug = slug
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Fields != nil {
		if err := validateFields(*req.Fields); err != nil {
			return nil, err
		}
		f.Fields = *req.Fields
	}
	if req.Stylesheet != nil {
		f.Stylesheet = *req.Stylesheet
	}
	if req.Settings != nil {
		settings := *req.Settings
		settings.Normalize()
		f.Settings = settings
	}
	if req.Active != nil {
		f.Active = *req.Active
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly *bool, limit, offset int) ([]FormDefinition, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, activeOnly, limit, offset)
}

// Duplicate clones a form as an inactive copy with a fresh slug.
func (s *Service) Duplicate(ctx context.Context, id int64) (*FormDefinition, error) {
	src, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, src.Slug, 0)
	if err != nil {
		return nil, err
	}

	clone := &FormDefinition{
		Name:        src.Name + " (copy)",
		Slug:        slug,
		Description: src.Description,
		Fields:      src.Fields,
		Stylesheet:  src.Stylesheet,
		Settings:    src.Settings,
		Active:      false,
	}
	if err := s.repo.Create(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (*FormDefinition, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Active = !f.Active
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Render builds the public payload for a form embed. Unknown or inactive
// forms yield an unavailable result rather than an error, so embeds degrade
// to a message instead of breaking the page.
func (s *Service) Render(ctx context.Context, slug string) (*RenderResult, error) {
	f, err := s.repo.GetBySlug(ctx, slug)
	if err == ErrFormNotFound {
		return unavailable(), nil
	}
	if err != nil {
		return nil, err
	}
	if !f.Active {
		return unavailable(), nil
	}

	var b strings.Builder
	for _, spec := range f.Fields {
		b.WriteString(field.Build(spec))
	}

	return &RenderResult{
		Available:  true,
		FormID:     f.ID,
		Name:       f.Name,
		Slug:       f.Slug,
		Stylesheet: f.Stylesheet,
		HTML:       b.String(),
		Settings: &ClientSettings{
			Messages:        f.Settings.Messages,
			WhatsAppEnabled: f.Settings.WhatsApp.Enabled,
			Honeypot:        f.Settings.Security.Honeypot,
		},
	}, nil
}

func unavailable() *RenderResult {
	return &RenderResult{
		Available: false,
		Message:   "Este formulario no está disponible.",
	}
}

// uniqueSlug appends -1, -2, ... until the slug is free.
func (s *Service) uniqueSlug(ctx context.Context, base string, excludeID int64) (string, error) {
	if base == "" {
		base = "form"
	}
	slug := base
	for n := 1; ; n++ {
		taken, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func validateFields(specs []field.Spec) error {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("%w: field without a name", ErrInvalidField)
		}
		if !field.IsSupported(spec.Type) {
			return fmt.Errorf("%w: %q", ErrUnsupportedField, spec.Type)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidField, spec.Name)
		}
		seen[spec.Name] = true
		if spec.IsChoice() && len(spec.Options) == 0 {
			return fmt.Errorf("%w: %s field %q has no options", ErrInvalidField, spec.Type, spec.Name)
		}
	}
	return nil
}

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	slugAccented = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
	)
)

// Slugify lowercases, strips accents common in Spanish form names and
// collapses everything else to single dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugAccented.Replace(s)
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
