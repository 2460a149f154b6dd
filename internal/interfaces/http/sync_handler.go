package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/application/sellersync"
)

// SyncHandler expõe o passe de reconciliação de vendedores (admin).
type SyncHandler struct {
	reconciler *sellersync.Reconciler
	aliases    []sellersync.Alias
}

// NewSyncHandler constrói o handler com a tabela de apelidos da configuração.
func NewSyncHandler(reconciler *sellersync.Reconciler, aliases []sellersync.Alias) *SyncHandler {
	return &SyncHandler{reconciler: reconciler, aliases: aliases}
}

// Run POST /api/sync/sellers
// Jobs em lote respondem 200 com o relatório mesmo em sucesso parcial;
// o operador re-executa para completar o que faltou.
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	report, err := h.reconciler.Run(c.Context(), h.aliases)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}
