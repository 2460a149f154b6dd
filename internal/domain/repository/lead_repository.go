package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/domain/entity"
)

// LeadRepository define o porto de persistência para Lead.
// Métodos de leitura devolvem (nil, nil) quando o registro não existe.
type LeadRepository interface {
	Create(lead *entity.Lead) error
	GetByID(id string) (*entity.Lead, error)
	// ListByOwners devolve todos os leads cujo UserID pertence ao conjunto.
	// O adaptador particiona o conjunto em blocos de tamanho fixo (o store
	// limita consultas por conjunto de ids) e une os resultados.
	ListByOwners(uids []string) ([]*entity.Lead, error)
	ListAll() ([]*entity.Lead, error)

	// ClaimUnassigned atribui o lead ao vendedor somente se o dono atual
	// ainda for o sentinela "unassigned" (update condicional atômico).
	// Devolve false quando a precondição falhou no momento da escrita.
	ClaimUnassigned(leadID, sellerUID, sellerName string, lastContact time.Time) (bool, error)

	UpdateStage(leadID, stage string) error
	UpdateOwner(leadID, sellerUID, sellerName string) error
	// RecordCompletion grava finalizado + completedAt + valor final.
	// Idempotente: repetir com o mesmo completedAt não altera agregados.
	RecordCompletion(leadID string, completedAt time.Time, valueAfterDiscount decimal.Decimal) error
	SetCommissionPaid(leadID string, paid bool) error
}
