package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voluz/vendas-api/internal/application/sellersync"
)

var _ sellersync.LeadBatchWriter = (*BatchWriter)(nil)

// maxBatchOps teto de operações por lote de escrita. O store impõe um
// limite por transação de algumas centenas de operações; lotes são
// enviados sequencialmente e NÃO são atômicos entre si: se o lote N
// falhar, os lotes 1..N-1 permanecem gravados. A recuperação é re-rodar
// o job (idempotente), não rollback.
const maxBatchOps = 400

// BatchWriter aplica conjuntos grandes de atualizações de ownership em
// lotes limitados via pgx.Batch.
type BatchWriter struct {
	pool *pgxpool.Pool
}

// NewBatchWriter constrói o writer com o pool.
func NewBatchWriter(pool *pgxpool.Pool) *BatchWriter {
	return &BatchWriter{pool: pool}
}

// ApplyOwnership regrava user_id/seller_name dos leads indicados.
// Devolve quantas atualizações foram confirmadas; em caso de erro no
// meio do job, o contador reflete o progresso parcial já gravado.
func (w *BatchWriter) ApplyOwnership(ctx context.Context, updates []sellersync.OwnershipUpdate) (int, error) {
	applied := 0
	for start := 0; start < len(updates); start += maxBatchOps {
		end := start + maxBatchOps
		if end > len(updates) {
			end = len(updates)
		}
		chunk := updates[start:end]

		batch := &pgx.Batch{}
		for _, up := range chunk {
			batch.Queue(
				`UPDATE leads SET user_id = $2, seller_name = $3 WHERE id = $1`,
				up.LeadID, up.SellerUID, up.SellerName,
			)
		}
		br := w.pool.SendBatch(ctx, batch)
		for range chunk {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return applied, fmt.Errorf("batch ownership (após %d aplicadas): %w", applied, err)
			}
			applied++
		}
		if err := br.Close(); err != nil {
			return applied, fmt.Errorf("fechar batch: %w", err)
		}
	}
	return applied, nil
}
