package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/voluz/vendas-api/internal/application/commission"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/domain"
)

// CommissionHandler trata as consultas e a liquidação de comissões.
type CommissionHandler struct {
	uc *commission.UseCase
}

// NewCommissionHandler constrói o handler.
func NewCommissionHandler(uc *commission.UseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// ComputeForLead GET /api/leads/:id/commission
func (h *CommissionHandler) ComputeForLead(c *fiber.Ctx) error {
	payout, err := h.uc.ComputeForLead(c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLeadNotFound), errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFinalized):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_FINALIZED", Message: "comissão só é calculada para lead finalizado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(payout)
}

// Monthly GET /api/commission/monthly — ganhos do mês do usuário autenticado.
func (h *CommissionHandler) Monthly(c *fiber.Ctx) error {
	gains, err := h.uc.MonthlyGains(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuário não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(gains)
}

// Balances GET /api/commission/balances — saldos all-time pendente/liquidado.
func (h *CommissionHandler) Balances(c *fiber.Ctx) error {
	balances, err := h.uc.Balances(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuário não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(balances)
}

// Settle POST /api/commission/settle — liquidação em lote (admin).
// Sempre responde 200 com o relatório agregado; falhas de linha vão em errors.
func (h *CommissionHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.LeadIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_ids é obrigatório"})
	}
	return c.JSON(h.uc.SettleLeads(in.LeadIDs))
}
