package sellersync

import "context"

// OwnershipUpdate regravação de dono canônico + cache de nome de um lead.
type OwnershipUpdate struct {
	LeadID     string
	SellerUID  string
	SellerName string
}

// LeadBatchWriter porto de escrita em lote para o passe de reconciliação.
// A implementação particiona em lotes limitados (teto do store por
// transação) e grava sequencialmente; falha no meio preserva o progresso
// dos lotes anteriores — o job é re-executável, não transacional.
type LeadBatchWriter interface {
	ApplyOwnership(ctx context.Context, updates []OwnershipUpdate) (applied int, err error)
}
