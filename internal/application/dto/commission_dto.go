package dto

import "github.com/shopspring/decimal"

// NetworkShareDTO parcela de comissão de rede de um ancestral.
type NetworkShareDTO struct {
	UID    string          `json:"uid"`
	Level  int             `json:"level"`
	Amount decimal.Decimal `json:"amount"`
}

// PayoutResponse conjunto de pagamentos gerado por um lead finalizado.
type PayoutResponse struct {
	LeadID   string            `json:"lead_id"`
	OwnerUID string            `json:"owner_uid"`
	Personal decimal.Decimal   `json:"personal"`
	Network  []NetworkShareDTO `json:"network"`
	Total    decimal.Decimal   `json:"total"`
}

// MonthlyGainsResponse ganhos do mês-calendário corrente de um usuário.
type MonthlyGainsResponse struct {
	UID          string          `json:"uid"`
	Personal     decimal.Decimal `json:"personal"`
	Network      decimal.Decimal `json:"network"`
	Total        decimal.Decimal `json:"total"`
	LeadsCounted int             `json:"leads_counted"`
	MonthLabel   string          `json:"month_label"`
}

// BalancesResponse saldos all-time particionados por liquidação.
type BalancesResponse struct {
	UID     string          `json:"uid"`
	Pending decimal.Decimal `json:"pending"`
	Settled decimal.Decimal `json:"settled"`
}

// SettleRequest liquidação em lote de comissões.
type SettleRequest struct {
	LeadIDs []string `json:"lead_ids"`
}

// SettleReport resultado agregado do job de liquidação. Nunca aborta por
// erro de uma linha: Errors carrega as falhas e Settled o progresso.
type SettleReport struct {
	Success bool     `json:"success"`
	Settled int      `json:"settled"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
