package pipeline_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/application/pipeline"
	"github.com/voluz/vendas-api/internal/domain"
	"github.com/voluz/vendas-api/internal/domain/entity"
)

func unassignedLead(id string) *entity.Lead {
	return &entity.Lead{
		ID:        id,
		UserID:    entity.UserUnassigned,
		Stage:     entity.StageParaAtribuir,
		CreatedAt: time.Now(),
	}
}

func TestClaim_Sucesso(t *testing.T) {
	seller := &entity.User{UID: "v1", Name: "Vendedor Um", Role: entity.RoleSeller}
	leads := newFakeLeadRepo(unassignedLead("l1"))
	uc := pipeline.NewUseCase(leads, newFakeUserRepo(seller))

	require.NoError(t, uc.Claim("l1", "v1"))

	got, _ := leads.GetByID("l1")
	assert.Equal(t, "v1", got.UserID)
	assert.Equal(t, "Vendedor Um", got.SellerName, "uid e nome devem ser gravados juntos")
	assert.Equal(t, entity.StageContato, got.Stage, "claim move para-atribuir -> contato")
}

func TestClaim_LeadJaAtribuido(t *testing.T) {
	lead := unassignedLead("l1")
	lead.UserID = "outro"
	leads := newFakeLeadRepo(lead)
	uc := pipeline.NewUseCase(leads, newFakeUserRepo(&entity.User{UID: "v1", Name: "V"}))

	err := uc.Claim("l1", "v1")
	assert.ErrorIs(t, err, domain.ErrClaimConflict)

	got, _ := leads.GetByID("l1")
	assert.Equal(t, "outro", got.UserID, "o dono não muda para o perdedor")
}

func TestClaim_LeadInexistente(t *testing.T) {
	uc := pipeline.NewUseCase(newFakeLeadRepo(), newFakeUserRepo(&entity.User{UID: "v1"}))
	assert.ErrorIs(t, uc.Claim("nao-existe", "v1"), domain.ErrLeadNotFound)
}

func TestClaim_VendedorInexistente(t *testing.T) {
	uc := pipeline.NewUseCase(newFakeLeadRepo(unassignedLead("l1")), newFakeUserRepo())
	assert.ErrorIs(t, uc.Claim("l1", "fantasma"), domain.ErrUserNotFound)
}

// Dois vendedores disputando o mesmo lead: exatamente um vence e o dono
// final é o vencedor. O perdedor recebe ErrClaimConflict.
func TestClaim_ExatamenteUmVencedor(t *testing.T) {
	sellers := []*entity.User{
		{UID: "v1", Name: "Vendedor Um"},
		{UID: "v2", Name: "Vendedor Dois"},
	}
	leads := newFakeLeadRepo(unassignedLead("l1"))
	uc := pipeline.NewUseCase(leads, newFakeUserRepo(sellers...))

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, uid := range []string{"v1", "v2"} {
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			errs[i] = uc.Claim("l1", uid)
		}(i, uid)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrClaimConflict)
		}
	}
	require.Equal(t, 1, winners, "exatamente um claim deve vencer")

	got, _ := leads.GetByID("l1")
	if errs[0] == nil {
		assert.Equal(t, "v1", got.UserID)
	} else {
		assert.Equal(t, "v2", got.UserID)
	}
}

func TestMoveStage_AdminMoveQualquerLead(t *testing.T) {
	lead := unassignedLead("l1")
	lead.UserID = "v1"
	lead.Stage = entity.StageContato
	leads := newFakeLeadRepo(lead)
	uc := pipeline.NewUseCase(leads, newFakeUserRepo())

	require.NoError(t, uc.MoveStage("admin-1", entity.RoleAdmin, "l1", entity.StageProposta))
	got, _ := leads.GetByID("l1")
	assert.Equal(t, entity.StageProposta, got.Stage)
}

func TestMoveStage_VendedorSoMoveOsProprios(t *testing.T) {
	lead := unassignedLead("l1")
	lead.UserID = "v1"
	lead.Stage = entity.StageContato
	uc := pipeline.NewUseCase(newFakeLeadRepo(lead), newFakeUserRepo())

	assert.ErrorIs(t, uc.MoveStage("v2", entity.RoleSeller, "l1", entity.StageProposta), domain.ErrForbidden)
	assert.NoError(t, uc.MoveStage("v1", entity.RoleSeller, "l1", entity.StageProposta))
}

func TestMoveStage_EtapaInvalida(t *testing.T) {
	uc := pipeline.NewUseCase(newFakeLeadRepo(), newFakeUserRepo())
	assert.ErrorIs(t, uc.MoveStage("a", entity.RoleAdmin, "l1", "etapa-que-nao-existe"), domain.ErrInvalidStage)
}

func TestMoveStage_FinalizadoNaoRetrocede(t *testing.T) {
	lead := unassignedLead("l1")
	lead.UserID = "v1"
	lead.Stage = entity.StageFinalizado
	uc := pipeline.NewUseCase(newFakeLeadRepo(lead), newFakeUserRepo())

	err := uc.MoveStage("admin-1", entity.RoleAdmin, "l1", entity.StageContato)
	assert.ErrorIs(t, err, domain.ErrStageLocked,
		"sair de finalizado é erro: a comissão pode já estar liquidada")
}

func TestRecordCompletion_GravaFinalizacao(t *testing.T) {
	lead := unassignedLead("l1")
	lead.UserID = "v1"
	lead.Stage = entity.StageAssinado
	leads := newFakeLeadRepo(lead)
	uc := pipeline.NewUseCase(leads, newFakeUserRepo())

	completedAt := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, uc.RecordCompletion("l1", completedAt, decimal.NewFromInt(900)))

	got, _ := leads.GetByID("l1")
	assert.Equal(t, entity.StageFinalizado, got.Stage)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))
	assert.True(t, got.ValueAfterDiscount.Equal(decimal.NewFromInt(900)))
}

func TestRecordCompletion_LeadInexistente(t *testing.T) {
	uc := pipeline.NewUseCase(newFakeLeadRepo(), newFakeUserRepo())
	err := uc.RecordCompletion("nada", time.Now(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
}

// Repetir a finalização com o mesmo completedAt não duplica agregados:
// a janela mensal soma linhas, não mutações.
func TestRecordCompletion_IdempotenteNosAgregados(t *testing.T) {
	lead := unassignedLead("l1")
	lead.UserID = "v1"
	leads := newFakeLeadRepo(lead)
	uc := pipeline.NewUseCase(leads, newFakeUserRepo())

	ref := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, uc.RecordCompletion("l1", ref, decimal.NewFromInt(900)))
	require.NoError(t, uc.RecordCompletion("l1", ref, decimal.NewFromInt(900)))

	all, _ := leads.ListAll()
	total := pipeline.ValueFinalizedInMonth(all, ref)
	assert.True(t, total.Equal(decimal.NewFromInt(900)),
		"valor do mês deve contar o lead uma única vez, obtido %s", total)
}

func TestCreateLead_EtapaInicialValidada(t *testing.T) {
	leads := newFakeLeadRepo()
	uc := pipeline.NewUseCase(leads, newFakeUserRepo())

	out, err := uc.CreateLead(dto.CreateLeadRequest{SellerName: "Fulano", Value: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, entity.StageParaAtribuir, out.Stage, "default é para-atribuir")
	assert.Equal(t, entity.UserUnassigned, out.UserID)

	_, err = uc.CreateLead(dto.CreateLeadRequest{Stage: entity.StageContato})
	assert.ErrorIs(t, err, domain.ErrInvalidStage, "intake só cria em para-atribuir ou para-validacao")
}
