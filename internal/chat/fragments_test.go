package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatpump/internal/model"
)

func TestBuildProfileFragmentsBothNil(t *testing.T) {
	assert.Nil(t, BuildProfileFragments(nil, nil))
}

func TestBuildProfileFragmentsFragment1IsConstant(t *testing.T) {
	a := BuildProfileFragments(&model.EntrepreneurProfile{FullName: "Ana"}, nil)
	b := BuildProfileFragments(nil, &model.CompanyProfile{CompanyName: "Pump Doces"})

	assert.NotNil(t, a)
	assert.NotNil(t, b)
	assert.Equal(t, a.Fragment1, b.Fragment1)
	assert.Contains(t, a.Fragment1, "temas empresariais")
}

func TestBuildProfileFragmentsInterpolatesFields(t *testing.T) {
	ent := &model.EntrepreneurProfile{
		FullName:   "Ana Souza",
		Experience: "10 anos no varejo",
		Education:  "superior completo",
		Motivation: "crescer a loja",
	}
	comp := &model.CompanyProfile{
		CompanyName:      "Pump Doces",
		Sector:           "alimentação",
		Size:             "microempresa",
		ProductsServices: "doces artesanais",
		TargetAudience:   "festas infantis",
		MainChallenges:   "divulgação",
	}

	frags := BuildProfileFragments(ent, comp)
	assert.NotNil(t, frags)

	assert.Contains(t, frags.Fragment2, "nome: Ana Souza")
	assert.Contains(t, frags.Fragment2, "experiência profissional: 10 anos no varejo")
	assert.Contains(t, frags.Fragment2, "nome da empresa: Pump Doces")
	assert.Contains(t, frags.Fragment2, "principais dificuldades: divulgação")
	assert.NotContains(t, frags.Fragment2, "não informad")
}

func TestBuildProfileFragmentsFallbacksRespectGender(t *testing.T) {
	// Só o perfil do empreendedor existe, e incompleto
	frags := BuildProfileFragments(&model.EntrepreneurProfile{FullName: "Ana"}, nil)
	assert.NotNil(t, frags)

	assert.Contains(t, frags.Fragment2, "experiência profissional: não informada")
	assert.Contains(t, frags.Fragment2, "escolaridade: não informada")
	assert.Contains(t, frags.Fragment2, "nome da empresa: não informado")
	assert.Contains(t, frags.Fragment2, "setor de atuação: não informado")
	assert.Contains(t, frags.Fragment2, "produtos ou serviços: não informados")
	assert.Contains(t, frags.Fragment2, "principais dificuldades: não informadas")
}
