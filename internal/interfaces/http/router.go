package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/voluz/vendas-api/internal/application/auth"
	"github.com/voluz/vendas-api/internal/application/commission"
	"github.com/voluz/vendas-api/internal/application/pipeline"
	"github.com/voluz/vendas-api/internal/application/sellersync"
	"github.com/voluz/vendas-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	PipelineUC   *pipeline.UseCase
	Aggregator   *pipeline.Aggregator
	CommissionUC *commission.UseCase
	Reconciler   *sellersync.Reconciler
	Aliases      []sellersync.Alias
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Leads (pipeline)
	leadHandler := NewLeadHandler(deps.PipelineUC)
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	leads := protected.Group("/leads")
	leads.Post("/", leadHandler.Create)
	leads.Post("/:id/claim", leadHandler.Claim)
	leads.Put("/:id/stage", leadHandler.MoveStage)
	leads.Post("/:id/complete", RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin), leadHandler.Complete)
	leads.Get("/:id/commission", commissionHandler.ComputeForLead)

	// Equipe (dashboards)
	teamHandler := NewTeamHandler(deps.Aggregator)
	team := protected.Group("/team")
	team.Get("/", teamHandler.Team)
	team.Get("/leads", teamHandler.Leads)
	team.Get("/summary", teamHandler.Summary)

	// Comissão
	comm := protected.Group("/commission")
	comm.Get("/monthly", commissionHandler.Monthly)
	comm.Get("/balances", commissionHandler.Balances)
	comm.Post("/settle", RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin), commissionHandler.Settle)

	// Reconciliação de vendedores (admin)
	syncHandler := NewSyncHandler(deps.Reconciler, deps.Aliases)
	protected.Post("/sync/sellers", RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin), syncHandler.Run)
}
