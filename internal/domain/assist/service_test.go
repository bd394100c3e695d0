package assist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"formgate/internal/domain/field"
	"formgate/internal/domain/form"
	"formgate/internal/pkg/ratelimit"

	// registers the cgo-free "sqlite" driver used below
	_ "modernc.org/sqlite"
)

type stubProvider struct {
	output  string
	err     error
	prompts []string
}

func (p *stubProvider) Name() string  { return "stub" }
func (p *stubProvider) Model() string { return "stub-1" }

func (p *stubProvider) Generate(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	return p.output, nil
}

type stubForms struct {
	form *form.FormDefinition
}

func (s *stubForms) GetByID(_ context.Context, id int64) (*form.FormDefinition, error) {
	if s.form == nil || s.form.ID != id {
		return nil, form.ErrFormNotFound
	}
	return s.form, nil
}

func setupAssist(t *testing.T, provider Provider, quota int64) (*Service, *Repository) {
	t.Helper()
	dsn := fmt.Sprintf("file:assist_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&GenerationRecord{}))

	forms := &stubForms{form: &form.FormDefinition{
		ID:   1,
		Name: "Contacto",
		Fields: form.FieldList{
			{Type: field.TypeText, Name: "nombre", Label: "Nombre"},
			{Type: field.TypeEmail, Name: "email", Label: "Email"},
		},
		Stylesheet: ".fg-input{border:1px solid #ccc}",
	}}

	repo := NewRepository(db)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), quota)
	return NewService(provider, forms, repo, limiter, nil), repo
}

func TestGenerateSanitizesAndRecords(t *testing.T) {
	provider := &stubProvider{output: "```css\n<style>.fg-input{color:red}</style>\n```"}
	svc, repo := setupAssist(t, provider, 10)
	ctx := context.Background()

	rec, err := svc.Generate(ctx, 1, "hazlo rojo")
	require.NoError(t, err)

	assert.Equal(t, ".fg-input{color:red}", rec.GeneratedCSS)
	assert.Equal(t, "stub", rec.Provider)
	assert.Equal(t, "stub-1", rec.Model)
	assert.Equal(t, "hazlo rojo", rec.Prompt)

	history, err := repo.History(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.GeneratedCSS, history[0].GeneratedCSS)
}

func TestGeneratePromptCarriesFormContext(t *testing.T) {
	provider := &stubProvider{output: ".x{}"}
	svc, _ := setupAssist(t, provider, 10)

	_, err := svc.Generate(context.Background(), 1, "estilo oscuro")
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "Contacto")
	assert.Contains(t, prompt, "Nombre (text)")
	assert.Contains(t, prompt, ".fg-input")
	assert.Contains(t, prompt, ".fg-input{border:1px solid #ccc}")
	assert.Contains(t, prompt, "estilo oscuro")
}

func TestGenerateRateLimited(t *testing.T) {
	provider := &stubProvider{output: ".x{}"}
	svc, _ := setupAssist(t, provider, 2)
	ctx := context.Background()

	_, err := svc.Generate(ctx, 1, "uno")
	require.NoError(t, err)
	_, err = svc.Generate(ctx, 1, "dos")
	require.NoError(t, err)

	_, err = svc.Generate(ctx, 1, "tres")
	assert.ErrorIs(t, err, ErrRateLimited)

	// the provider was not called for the rejected request
	assert.Len(t, provider.prompts, 2)
}

func TestGenerateProviderErrorNotRecorded(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider returned status 500")}
	svc, repo := setupAssist(t, provider, 10)
	ctx := context.Background()

	_, err := svc.Generate(ctx, 1, "algo")
	require.Error(t, err)

	history, err := repo.History(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGenerateValidationEdges(t *testing.T) {
	svc, _ := setupAssist(t, &stubProvider{output: ".x{}"}, 10)
	ctx := context.Background()

	_, err := svc.Generate(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = svc.Generate(ctx, 99, "algo")
	assert.ErrorIs(t, err, form.ErrFormNotFound)

	unconfigured := NewService(nil, &stubForms{}, nil, nil, nil)
	_, err = unconfigured.Generate(ctx, 1, "algo")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTemplates(t *testing.T) {
	templates := Templates()
	require.Len(t, templates, 4)

	ids := make([]string, 0, len(templates))
	for _, tpl := range templates {
		assert.NotEmpty(t, tpl.Prompt)
		ids = append(ids, tpl.ID)
	}
	assert.ElementsMatch(t, []string{"corporate", "minimal", "modern", "dark"}, ids)
}
