package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/application/pipeline"
	"github.com/voluz/vendas-api/internal/domain"
)

// LeadHandler trata as requisições HTTP do pipeline de leads.
type LeadHandler struct {
	uc *pipeline.UseCase
}

// NewLeadHandler constrói o handler.
func NewLeadHandler(uc *pipeline.UseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create POST /api/leads — intake de lead sem dono.
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	lead, err := h.uc.CreateLead(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "etapa inicial deve ser para-atribuir ou para-validacao"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// Claim POST /api/leads/:id/claim — o vendedor autenticado reivindica o lead.
func (h *LeadHandler) Claim(c *fiber.Ctx) error {
	leadID := c.Params("id")
	sellerUID := GetUserID(c)
	if sellerUID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Claim(leadID, sellerUID); err != nil {
		switch {
		case errors.Is(err, domain.ErrLeadNotFound), errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrClaimConflict):
			// Visível ao usuário; não há retry automático.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CLAIM_CONFLICT", Message: "este lead acabou de ser atribuído a outro vendedor"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MoveStage PUT /api/leads/:id/stage
func (h *LeadHandler) MoveStage(c *fiber.Ctx) error {
	leadID := c.Params("id")
	var in dto.MoveStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	err := h.uc.MoveStage(GetUserID(c), GetRole(c), leadID, in.Stage)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "etapa inválida"})
		case errors.Is(err, domain.ErrLeadNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead não encontrado"})
		case errors.Is(err, domain.ErrStageLocked):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STAGE_LOCKED", Message: "lead finalizado não pode retroceder"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "vendedor só move os próprios leads"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete POST /api/leads/:id/complete
func (h *LeadHandler) Complete(c *fiber.Ctx) error {
	leadID := c.Params("id")
	var in dto.CompleteLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.CompletedAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "completed_at é obrigatório"})
	}
	if err := h.uc.RecordCompletion(leadID, in.CompletedAt, in.ValueAfterDiscount); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
