package chat

// AssembleSystemPrompt é a única fonte do prompt de sistema final. A mesma
// string devolvida aqui vai para o payload da IA e para o prompt_logs, o que
// mantém o log de auditoria fiel por construção.
//
// Há duas ordenações, e a troca entre elas é comportamento de compatibilidade:
//
//   - sem injeção de perfil: a concatenação simples do composer
//     (layout, regras, tags, tema);
//   - com injeção de perfil: layout, linha de contexto do tema, fragmento 1,
//     fragmento 2, regras, tags e por fim o prompt furtivo do tema.
func AssembleSystemPrompt(injectProfile bool, set *SystemPromptSet, frags *ProfileFragments) string {
	if !injectProfile || frags == nil {
		return set.SystemPrompt
	}

	parts := []string{set.Layout}

	if set.Theme != nil && set.Theme.Title != "" {
		parts = append(parts, "Contexto do tema: "+set.Theme.Title)
	}

	parts = append(parts, frags.Fragment1, frags.Fragment2, set.Rules, set.Tags)

	if set.Theme != nil {
		parts = append(parts, set.Theme.PromptFurtive)
	}

	return joinParts(parts)
}
