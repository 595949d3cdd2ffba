package chat

import (
	"context"
	"log"
	"strings"

	"chatpump/internal/model"
	"chatpump/internal/repository"
)

// FragmentStore é a visão do composer sobre a tabela de fragmentos.
type FragmentStore interface {
	GetByCategory(ctx context.Context, category string) (string, error)
	GetThemePrompt(ctx context.Context, themeID string) (*model.ThemePrompt, error)
	GetThemeName(ctx context.Context, themeID string) (string, error)
}

// SystemPromptSet reúne os componentes individuais do prompt de sistema e a
// concatenação simples deles. Componentes ausentes ficam vazios/nil.
type SystemPromptSet struct {
	Layout string
	Rules  string
	Tags   string
	Theme  *model.ThemePrompt

	// SystemPrompt é layout+regras+tags+tema (os presentes), separados por
	// linha em branco, na ordem de busca.
	SystemPrompt string
}

// GetSystemPrompts busca os quatro componentes estáticos do prompt de
// sistema. Cada leitura tolera ausência e erro de consulta: o erro é logado
// e o componente tratado como ausente, a montagem nunca falha fechada.
func GetSystemPrompts(ctx context.Context, store FragmentStore, themeID string) *SystemPromptSet {
	set := &SystemPromptSet{}

	var err error
	set.Layout, err = store.GetByCategory(ctx, repository.CategoryLayout)
	if err != nil {
		log.Printf("[Composer] Erro ao buscar fragmento LAYOUT: %v", err)
		set.Layout = ""
	}

	set.Rules, err = store.GetByCategory(ctx, repository.CategoryRules)
	if err != nil {
		log.Printf("[Composer] Erro ao buscar fragmento de regras: %v", err)
		set.Rules = ""
	}

	set.Tags, err = store.GetByCategory(ctx, repository.CategoryTags)
	if err != nil {
		log.Printf("[Composer] Erro ao buscar fragmento de tags: %v", err)
		set.Tags = ""
	}

	if themeID != "" {
		set.Theme, err = store.GetThemePrompt(ctx, themeID)
		if err != nil {
			log.Printf("[Composer] Erro ao buscar prompt do tema %s: %v", themeID, err)
			set.Theme = nil
		}
	}

	parts := []string{set.Layout, set.Rules, set.Tags}
	if set.Theme != nil {
		parts = append(parts, set.Theme.PromptFurtive)
	}
	set.SystemPrompt = joinParts(parts)

	return set
}

// joinParts concatena os trechos não vazios com linha em branco entre eles.
func joinParts(parts []string) string {
	var present []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, "\n\n")
}
