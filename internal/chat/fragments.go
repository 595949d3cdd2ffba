package chat

import (
	"fmt"
	"strings"

	"chatpump/internal/model"
)

// Fallbacks com concordância de gênero/número em português.
const (
	naoInformado  = "não informado"
	naoInformada  = "não informada"
	naoInformados = "não informados"
	naoInformadas = "não informadas"
)

// profileFragment1 é fixo: delimita o escopo de negócios do assistente,
// independente do conteúdo dos perfis.
const profileFragment1 = `Você é um assistente de negócios da Pump.ia. Responda exclusivamente sobre temas empresariais: marketing, vendas, finanças, gestão de pessoas, operações e planejamento estratégico. Se a conversa sair desses temas, redirecione educadamente o usuário para o contexto do negócio dele.`

type ProfileFragments struct {
	Fragment1 string
	Fragment2 string
}

// BuildProfileFragments monta os dois fragmentos de perfil usados no prompt
// de sistema. Devolve nil apenas quando os dois perfis estão ausentes.
// Campos vazios viram "não informado(a/os/as)".
func BuildProfileFragments(ent *model.EntrepreneurProfile, comp *model.CompanyProfile) *ProfileFragments {
	if ent == nil && comp == nil {
		return nil
	}

	if ent == nil {
		ent = &model.EntrepreneurProfile{}
	}
	if comp == nil {
		comp = &model.CompanyProfile{}
	}

	fragment2 := fmt.Sprintf(
		"Dados do empreendedor: nome: %s; experiência profissional: %s; escolaridade: %s; motivação: %s. "+
			"Dados da empresa: nome da empresa: %s; setor de atuação: %s; porte: %s; produtos ou serviços: %s; público-alvo: %s; principais dificuldades: %s.",
		orFallback(ent.FullName, naoInformado),
		orFallback(ent.Experience, naoInformada),
		orFallback(ent.Education, naoInformada),
		orFallback(ent.Motivation, naoInformada),
		orFallback(comp.CompanyName, naoInformado),
		orFallback(comp.Sector, naoInformado),
		orFallback(comp.Size, naoInformado),
		orFallback(comp.ProductsServices, naoInformados),
		orFallback(comp.TargetAudience, naoInformado),
		orFallback(comp.MainChallenges, naoInformadas),
	)

	return &ProfileFragments{
		Fragment1: profileFragment1,
		Fragment2: fragment2,
	}
}

func orFallback(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
