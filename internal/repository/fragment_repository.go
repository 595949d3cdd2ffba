package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatpump/internal/model"
)

// Categorias singleton da tabela furtive_prompts.
const (
	CategoryLayout = "LAYOUT"
	CategoryRules  = "regras"
	CategoryTags   = "tags"
)

type FragmentRepository struct {
	DB *pgxpool.Pool
}

// GetByCategory devolve o conteúdo do fragmento da categoria, ou "" quando
// não existe linha (ausência não é erro).
func (r *FragmentRepository) GetByCategory(ctx context.Context, category string) (string, error) {
	var content string
	err := r.DB.QueryRow(ctx, `
		SELECT content
		FROM furtive_prompts
		WHERE category = $1
	`, category).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// GetThemePrompt busca o prompt do tema. Um tema pode ter várias linhas;
// seguimos o comportamento maybeSingle e lemos apenas a primeira.
func (r *FragmentRepository) GetThemePrompt(ctx context.Context, themeID string) (*model.ThemePrompt, error) {
	var tp model.ThemePrompt
	err := r.DB.QueryRow(ctx, `
		SELECT id, theme_id, title,
		       COALESCE(prompt_furtive, ''),
		       COALESCE(pattern_prompt, ''),
		       action_plan, created_at
		FROM theme_prompts
		WHERE theme_id = $1
		ORDER BY created_at
		LIMIT 1
	`, themeID).Scan(&tp.ID, &tp.ThemeID, &tp.Title, &tp.PromptFurtive, &tp.PatternPrompt, &tp.ActionPlan, &tp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

// GetThemeName devolve o nome do tema em chat_themes, ou "" quando ausente.
func (r *FragmentRepository) GetThemeName(ctx context.Context, themeID string) (string, error) {
	var name string
	err := r.DB.QueryRow(ctx, `
		SELECT name FROM chat_themes WHERE id = $1
	`, themeID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
