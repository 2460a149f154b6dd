package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas do pipeline de vendas (enum fechado de 11 valores).
const (
	StageParaValidacao = "para-validacao"
	StageParaAtribuir  = "para-atribuir"
	StageContato       = "contato"
	StageFatura        = "fatura"
	StageProposta      = "proposta"
	StageContrato      = "contrato"
	StageConformidade  = "conformidade"
	StageAssinado      = "assinado"
	StageFinalizado    = "finalizado"
	StageCancelado     = "cancelado"
	StagePerdido       = "perdido"
)

// UserUnassigned sentinela de ownership para leads ainda sem vendedor.
const UserUnassigned = "unassigned"

// Lead representa uma negociação no pipeline Kanban.
//
// SellerName é um cache de exibição do nome do dono e pode divergir do
// UserID canônico (importações antigas, renomeações). A reconciliação
// de vendedores corrige o drift; nunca atualizar um sem o outro.
type Lead struct {
	ID                 string
	UserID             string // uid do dono ou UserUnassigned
	SellerName         string
	Stage              string // ver constantes Stage*
	Value              decimal.Decimal
	ValueAfterDiscount decimal.Decimal
	KWh                decimal.Decimal
	CommissionPaid     bool
	CreatedAt          time.Time
	LastContact        time.Time
	SignedAt           *time.Time
	CompletedAt        *time.Time
}

// ValidStage verifica se a etapa pertence ao enum fechado.
func ValidStage(stage string) bool {
	switch stage {
	case StageParaValidacao, StageParaAtribuir, StageContato, StageFatura,
		StageProposta, StageContrato, StageConformidade, StageAssinado,
		StageFinalizado, StageCancelado, StagePerdido:
		return true
	}
	return false
}

// ActiveStage indica se a etapa conta como "lead ativo" nos dashboards.
// Finalizado, assinado, cancelado e perdido ficam de fora.
func ActiveStage(stage string) bool {
	switch stage {
	case StageFinalizado, StagePerdido, StageAssinado, StageCancelado:
		return false
	}
	return true
}

// CommissionEligible indica se o lead pode gerar comissão: etapa finalizado
// com CompletedAt preenchido. CommissionPaid separa pendente de liquidado
// sem apagar histórico.
func (l *Lead) CommissionEligible() bool {
	return l.Stage == StageFinalizado && l.CompletedAt != nil
}

// CompletedInMonth indica se o lead foi finalizado dentro do mês-calendário
// de ref (agregações mensais usam o mês de CompletedAt, nunca contadores
// de mutação — chamadas repetidas de finalização não duplicam somas).
func (l *Lead) CompletedInMonth(ref time.Time) bool {
	if l.CompletedAt == nil {
		return false
	}
	return l.CompletedAt.Year() == ref.Year() && l.CompletedAt.Month() == ref.Month()
}
