package pipeline_test

import (
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voluz/vendas-api/internal/application/pipeline"
	"github.com/voluz/vendas-api/internal/domain/entity"
)

// Hierarquia: a ← b ← c; x é de outra árvore.
func aggregatorFixture() (*fakeUserRepo, *fakeLeadRepo) {
	users := newFakeUserRepo(
		&entity.User{UID: "a", Name: "A"},
		&entity.User{UID: "b", Name: "B", UplineUID: "a"},
		&entity.User{UID: "c", Name: "C", UplineUID: "b"},
		&entity.User{UID: "x", Name: "X"},
	)
	leads := newFakeLeadRepo(
		&entity.Lead{ID: "la", UserID: "a", Stage: entity.StageContato},
		&entity.Lead{ID: "lb", UserID: "b", Stage: entity.StageProposta},
		&entity.Lead{ID: "lc", UserID: "c", Stage: entity.StageFinalizado},
		&entity.Lead{ID: "lx", UserID: "x", Stage: entity.StageContato},
		&entity.Lead{ID: "lu", UserID: entity.UserUnassigned, Stage: entity.StageParaAtribuir},
	)
	return users, leads
}

func TestTeamForUser_DownlineComNiveis(t *testing.T) {
	users, leads := aggregatorFixture()
	agg := pipeline.NewAggregator(users, leads)

	team, err := agg.TeamForUser("a")
	require.NoError(t, err)
	require.Len(t, team, 2)

	levels := map[string]int{}
	for _, m := range team {
		levels[m.UID] = m.Level
	}
	assert.Equal(t, 1, levels["b"])
	assert.Equal(t, 2, levels["c"])
}

// Igualdade de conjunto, não super/subconjunto: exatamente os leads de
// {a} ∪ downline(a).
func TestLeadsForTeam_IgualdadeDeConjunto(t *testing.T) {
	users, leads := aggregatorFixture()
	agg := pipeline.NewAggregator(users, leads)

	got, err := agg.LeadsForTeam("a")
	require.NoError(t, err)

	var ids []string
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"la", "lb", "lc"}, ids,
		"nem lx (outra árvore) nem lu (sem dono) pertencem ao time de a")
}

func TestLeadsForTeam_FolhaSoVeOsProprios(t *testing.T) {
	users, leads := aggregatorFixture()
	agg := pipeline.NewAggregator(users, leads)

	got, err := agg.LeadsForTeam("c")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lc", got[0].ID)
}

func TestActiveCount_ExcluiEtapasEncerradas(t *testing.T) {
	leads := []*entity.Lead{
		{Stage: entity.StageContato},
		{Stage: entity.StageProposta},
		{Stage: entity.StageFinalizado},
		{Stage: entity.StagePerdido},
		{Stage: entity.StageAssinado},
		{Stage: entity.StageCancelado},
	}
	assert.Equal(t, 2, pipeline.ActiveCount(leads),
		"finalizado, perdido, assinado e cancelado ficam fora da contagem ativa")
}

func TestValueFinalizedInMonth_JanelaMensal(t *testing.T) {
	ref := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	inMonth := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	leads := []*entity.Lead{
		{Stage: entity.StageFinalizado, CompletedAt: &inMonth, ValueAfterDiscount: decimal.NewFromInt(1000)},
		{Stage: entity.StageFinalizado, CompletedAt: &lastMonth, ValueAfterDiscount: decimal.NewFromInt(500)},
		{Stage: entity.StageContato, ValueAfterDiscount: decimal.NewFromInt(900)}, // sem completedAt
	}

	assert.Len(t, pipeline.FinalizedInMonth(leads, ref), 1)
	total := pipeline.ValueFinalizedInMonth(leads, ref)
	assert.True(t, total.Equal(decimal.NewFromInt(1000)),
		"só o finalizado do mês corrente entra, obtido %s", total)
}

// Cenário de referência do dashboard: lead finalizado de C aparece no time
// de A mas não conta como ativo.
func TestSummary_CenarioReferencia(t *testing.T) {
	now := time.Now()
	users := newFakeUserRepo(
		&entity.User{UID: "a", Name: "A"},
		&entity.User{UID: "b", Name: "B", UplineUID: "a"},
		&entity.User{UID: "c", Name: "C", UplineUID: "b"},
	)
	leads := newFakeLeadRepo(
		&entity.Lead{ID: "l1", UserID: "c", Stage: entity.StageFinalizado, CompletedAt: &now, ValueAfterDiscount: decimal.NewFromInt(1000)},
		&entity.Lead{ID: "l2", UserID: "b", Stage: entity.StageContato},
	)
	agg := pipeline.NewAggregator(users, leads)

	summary, err := agg.Summary("a")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TeamSize)
	assert.Equal(t, 2, summary.TotalLeads)
	assert.Equal(t, 1, summary.ActiveLeads, "o lead finalizado não é ativo")
	assert.Equal(t, 1, summary.FinalizedThisMonth)
	assert.True(t, summary.ValueFinalizedThisMonth.Equal(decimal.NewFromInt(1000)))
}
