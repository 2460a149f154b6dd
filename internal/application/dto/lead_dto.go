package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadResponse representação pública de um lead.
type LeadResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	SellerName         string          `json:"seller_name"`
	Stage              string          `json:"stage"`
	Value              decimal.Decimal `json:"value"`
	ValueAfterDiscount decimal.Decimal `json:"value_after_discount"`
	KWh                decimal.Decimal `json:"kwh"`
	CommissionPaid     bool            `json:"commission_paid"`
	CreatedAt          time.Time       `json:"created_at"`
	LastContact        time.Time       `json:"last_contact"`
	SignedAt           *time.Time      `json:"signed_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
}

// CreateLeadRequest intake mínimo de lead (importador CSV, ingestão de chat
// e formulário manual criam leads por aqui; heurísticas de parsing ficam
// nos colaboradores externos).
type CreateLeadRequest struct {
	SellerName string          `json:"seller_name"`
	Stage      string          `json:"stage"` // para-atribuir ou para-validacao
	Value      decimal.Decimal `json:"value"`
	KWh        decimal.Decimal `json:"kwh"`
}

// MoveStageRequest movimentação de etapa no Kanban.
type MoveStageRequest struct {
	Stage string `json:"stage"`
}

// CompleteLeadRequest fechamento de negócio.
type CompleteLeadRequest struct {
	CompletedAt        time.Time       `json:"completed_at"`
	ValueAfterDiscount decimal.Decimal `json:"value_after_discount"`
}

// TeamSummaryResponse números do dashboard de equipe.
type TeamSummaryResponse struct {
	TeamSize                int             `json:"team_size"`
	TotalLeads              int             `json:"total_leads"`
	ActiveLeads             int             `json:"active_leads"`
	FinalizedThisMonth      int             `json:"finalized_this_month"`
	ValueFinalizedThisMonth decimal.Decimal `json:"value_finalized_this_month"`
	MonthLabel              string          `json:"month_label"`
}
