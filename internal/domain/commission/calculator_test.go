package commission_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voluz/vendas-api/internal/domain/commission"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/referral"
)

func intPtr(n int) *int { return &n }

func finalizedLead(ownerUID string, value int64) *entity.Lead {
	now := time.Now()
	return &entity.Lead{
		ID:                 "lead-1",
		UserID:             ownerUID,
		Stage:              entity.StageFinalizado,
		ValueAfterDiscount: decimal.NewFromInt(value),
		CompletedAt:        &now,
	}
}

// Cenário de referência: A (40%) ← B (nível 1, mlm) ← C (nível 2, mlm).
// Lead de C com valor 1000: C pessoal = 400, B rede = 50, A rede = 30.
func TestCompute_CenarioReferencia(t *testing.T) {
	a := &entity.User{UID: "a", CommissionRate: intPtr(40), MlmEnabled: true}
	b := &entity.User{UID: "b", UplineUID: "a", MlmEnabled: true}
	c := &entity.User{UID: "c", UplineUID: "b", MlmEnabled: true}
	g := referral.NewGraph([]*entity.User{a, b, c})

	lead := finalizedLead("c", 1000)
	payout := commission.Compute(lead, c, g)

	assert.True(t, payout.Personal.Equal(decimal.NewFromInt(400)),
		"comissão pessoal de C deve ser 1000 * 40%% = 400, obtido %s", payout.Personal)

	require.Len(t, payout.Network, 2)
	assert.Equal(t, "b", payout.Network[0].UID)
	assert.Equal(t, 1, payout.Network[0].Level)
	assert.True(t, payout.Network[0].Amount.Equal(decimal.NewFromInt(50)), "B nível 1 = 1000 * 5%%")
	assert.Equal(t, "a", payout.Network[1].UID)
	assert.Equal(t, 2, payout.Network[1].Level)
	assert.True(t, payout.Network[1].Amount.Equal(decimal.NewFromInt(30)), "A nível 2 = 1000 * 3%%")

	assert.True(t, payout.Total().Equal(decimal.NewFromInt(480)))
}

func TestPersonal_TaxaAusenteUsaDefault40(t *testing.T) {
	owner := &entity.User{UID: "o"} // sem CommissionRate: leniência deliberada
	lead := finalizedLead("o", 500)

	got := commission.Personal(lead, owner)
	assert.True(t, got.Equal(decimal.NewFromInt(200)), "500 * 40%% = 200")
}

// Nó com mlmEnabled=false não ganha a própria parcela, mas a caminhada
// continua para os ancestrais acima dele.
func TestNetwork_NoDesabilitadoNaoCortaPropagacao(t *testing.T) {
	a := &entity.User{UID: "a", MlmEnabled: true}
	b := &entity.User{UID: "b", UplineUID: "a", MlmEnabled: false}
	c := &entity.User{UID: "c", UplineUID: "b", MlmEnabled: true}
	g := referral.NewGraph([]*entity.User{a, b, c})

	shares := commission.Network(finalizedLead("c", 1000), "c", g)
	require.Len(t, shares, 1, "apenas A (nível 2) ganha; B está desabilitado")
	assert.Equal(t, "a", shares[0].UID)
	assert.Equal(t, 2, shares[0].Level)
	assert.True(t, shares[0].Amount.Equal(decimal.NewFromInt(30)), "A conserva a taxa do seu nível (3%%)")
}

func TestNetwork_ParaNoQuartoNivel(t *testing.T) {
	users := []*entity.User{
		{UID: "n0", MlmEnabled: true},
		{UID: "n1", UplineUID: "n0", MlmEnabled: true},
		{UID: "n2", UplineUID: "n1", MlmEnabled: true},
		{UID: "n3", UplineUID: "n2", MlmEnabled: true},
		{UID: "n4", UplineUID: "n3", MlmEnabled: true},
		{UID: "n5", UplineUID: "n4", MlmEnabled: true},
	}
	g := referral.NewGraph(users)

	shares := commission.Network(finalizedLead("n5", 1000), "n5", g)
	require.Len(t, shares, 4, "a comissão de rede para no 4º salto")

	wantRates := []int64{50, 30, 20, 10}
	for i, s := range shares {
		assert.Equal(t, i+1, s.Level)
		assert.True(t, s.Amount.Equal(decimal.NewFromInt(wantRates[i])),
			"nível %d: esperado %d, obtido %s", i+1, wantRates[i], s.Amount)
	}
}

// Invariante de sanidade: payout total nunca excede
// V * (40% pessoal + 5+3+2+1 de rede) = V * 51% na configuração default.
func TestCompute_LimiteSuperiorDoPayout(t *testing.T) {
	users := []*entity.User{
		{UID: "n0", MlmEnabled: true},
		{UID: "n1", UplineUID: "n0", MlmEnabled: true},
		{UID: "n2", UplineUID: "n1", MlmEnabled: true},
		{UID: "n3", UplineUID: "n2", MlmEnabled: true},
		{UID: "n4", UplineUID: "n3", MlmEnabled: true},
	}
	g := referral.NewGraph(users)
	owner := users[4]

	for _, v := range []int64{1, 137, 1000, 999999} {
		lead := finalizedLead("n4", v)
		payout := commission.Compute(lead, owner, g)
		bound := lead.ValueAfterDiscount.Mul(decimal.NewFromFloat(0.51))
		assert.True(t, payout.Total().LessThanOrEqual(bound),
			"payout %s excede o limite %s para valor %d", payout.Total(), bound, v)
	}
}

func TestNetworkRate_ForaDaTabelaEhZero(t *testing.T) {
	assert.True(t, commission.NetworkRate(5).IsZero())
	assert.True(t, commission.NetworkRate(0).IsZero())
}
