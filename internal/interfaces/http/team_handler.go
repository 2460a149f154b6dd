package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/application/pipeline"
)

// TeamHandler trata as consultas de equipe (downline) dos dashboards.
type TeamHandler struct {
	agg *pipeline.Aggregator
}

// NewTeamHandler constrói o handler.
func NewTeamHandler(agg *pipeline.Aggregator) *TeamHandler {
	return &TeamHandler{agg: agg}
}

// Team GET /api/team — downline do usuário autenticado, com níveis.
func (h *TeamHandler) Team(c *fiber.Ctx) error {
	uid := GetUserID(c)
	team, err := h.agg.TeamForUser(uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(team)
}

// Leads GET /api/team/leads — leads do usuário e de todo o seu downline.
func (h *TeamHandler) Leads(c *fiber.Ctx) error {
	uid := GetUserID(c)
	leads, err := h.agg.LeadsForTeam(uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, pipeline.LeadToResponse(l))
	}
	return c.JSON(out)
}

// Summary GET /api/team/summary — números do dashboard do mês corrente.
func (h *TeamHandler) Summary(c *fiber.Ctx) error {
	uid := GetUserID(c)
	summary, err := h.agg.Summary(uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}
