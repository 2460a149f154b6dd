package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementação do porto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	pool *pgxpool.Pool
}

// NewLeadRepository constrói o adaptador de persistência de leads.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `id, user_id, seller_name, stage, value, value_after_discount, kwh, commission_paid, created_at, last_contact, signed_at, completed_at`

// Create persiste um novo lead.
func (r *LeadRepo) Create(lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		lead.ID, lead.UserID, lead.SellerName, lead.Stage,
		lead.Value, lead.ValueAfterDiscount, lead.KWh, lead.CommissionPaid,
		lead.CreatedAt, lead.LastContact, lead.SignedAt, lead.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert lead: id duplicado: %w", err)
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtém um lead por id.
func (r *LeadRepo) GetByID(id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	var l entity.Lead
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.UserID, &l.SellerName, &l.Stage,
		&l.Value, &l.ValueAfterDiscount, &l.KWh, &l.CommissionPaid,
		&l.CreatedAt, &l.LastContact, &l.SignedAt, &l.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return &l, nil
}

// ListByOwners devolve os leads cujo dono pertence ao conjunto de uids.
// O conjunto é particionado em blocos de maxInClause ids e os resultados
// de cada bloco são unidos (padrão "IN-clause limitado" do store).
func (r *LeadRepo) ListByOwners(uids []string) ([]*entity.Lead, error) {
	var all []*entity.Lead
	for _, chunk := range chunkStrings(uids, maxInClause) {
		query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = ANY($1) ORDER BY created_at DESC`
		rows, err := r.pool.Query(context.Background(), query, chunk)
		if err != nil {
			return nil, fmt.Errorf("list leads by owners: %w", err)
		}
		part, err := r.scanMany(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		all = append(all, part...)
	}
	return all, nil
}

// ListAll devolve todos os leads (passe de reconciliação).
func (r *LeadRepo) ListAll() ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ClaimUnassigned atribui o lead ao vendedor num update condicional único:
// só escreve se o dono atual ainda for o sentinela "unassigned". Dois
// vendedores disputando o mesmo lead: exatamente um vence; o perdedor
// recebe false sem alterar o dono. uid e seller_name vão juntos na mesma
// escrita, nunca um sem o outro.
func (r *LeadRepo) ClaimUnassigned(leadID, sellerUID, sellerName string, lastContact time.Time) (bool, error) {
	query := `
		UPDATE leads
		SET user_id = $2, seller_name = $3, stage = $4, last_contact = $5
		WHERE id = $1 AND user_id = $6`
	tag, err := r.pool.Exec(context.Background(), query,
		leadID, sellerUID, sellerName, entity.StageContato, lastContact, entity.UserUnassigned,
	)
	if err != nil {
		return false, fmt.Errorf("claim lead: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStage move o lead de etapa (last-writer-wins).
func (r *LeadRepo) UpdateStage(leadID, stage string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE leads SET stage = $2, last_contact = now() WHERE id = $1`, leadID, stage)
	if err != nil {
		return fmt.Errorf("update lead stage: %w", err)
	}
	return nil
}

// UpdateOwner regrava dono canônico e cache de nome juntos.
func (r *LeadRepo) UpdateOwner(leadID, sellerUID, sellerName string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE leads SET user_id = $2, seller_name = $3 WHERE id = $1`, leadID, sellerUID, sellerName)
	if err != nil {
		return fmt.Errorf("update lead owner: %w", err)
	}
	return nil
}

// RecordCompletion grava finalizado + completedAt + valor final. Repetir
// a chamada com o mesmo completedAt regrava os mesmos valores.
func (r *LeadRepo) RecordCompletion(leadID string, completedAt time.Time, valueAfterDiscount decimal.Decimal) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE leads SET stage = $2, completed_at = $3, value_after_discount = $4
		WHERE id = $1`,
		leadID, entity.StageFinalizado, completedAt, valueAfterDiscount)
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// SetCommissionPaid marca a comissão do lead como liquidada (ou pendente).
func (r *LeadRepo) SetCommissionPaid(leadID string, paid bool) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE leads SET commission_paid = $2 WHERE id = $1`, leadID, paid)
	if err != nil {
		return fmt.Errorf("set commission paid: %w", err)
	}
	return nil
}

func (r *LeadRepo) scanMany(rows pgx.Rows) ([]*entity.Lead, error) {
	var list []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.SellerName, &l.Stage,
			&l.Value, &l.ValueAfterDiscount, &l.KWh, &l.CommissionPaid,
			&l.CreatedAt, &l.LastContact, &l.SignedAt, &l.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
