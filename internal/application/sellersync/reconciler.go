// Package sellersync implementa a reconciliação idempotente entre o cache
// de exibição sellerName dos leads e o ownership canônico por uid:
// re-atribuição de apelidos históricos, criação de vendedores órfãos e
// sincronização global de donos.
package sellersync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/repository"
	"github.com/voluz/vendas-api/pkg/logger"
)

// Alias um apelido histórico de nome de vendedor. From é a grafia antiga
// encontrada nos leads; To é o nome canônico; UID (opcional) força o dono.
type Alias struct {
	From string `json:"from"`
	To   string `json:"to"`
	UID  string `json:"uid,omitempty"`
}

// Reconciler executa o passe de reparo. O índice nome->uid é construído
// uma vez por invocação e passado adiante como argumento — nunca um cache
// global compartilhado entre chamadas.
type Reconciler struct {
	userRepo repository.UserRepository
	leadRepo repository.LeadRepository
	writer   LeadBatchWriter
	log      *logger.Logger
}

// NewReconciler constrói o reconciliador.
func NewReconciler(userRepo repository.UserRepository, leadRepo repository.LeadRepository, writer LeadBatchWriter, log *logger.Logger) *Reconciler {
	return &Reconciler{userRepo: userRepo, leadRepo: leadRepo, writer: writer, log: log}
}

// Run executa o passe completo na ordem: índice de nomes, re-atribuição de
// apelidos, criação de órfãos, sincronização global. Erros de linha entram
// no relatório sem abortar o job; uma segunda execução sobre dados
// inalterados devolve contadores zerados.
func (r *Reconciler) Run(ctx context.Context, aliases []Alias) (*dto.SyncReport, error) {
	report := &dto.SyncReport{Success: true}

	users, err := r.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("reconciliação: listar usuários: %w", err)
	}
	leads, err := r.leadRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("reconciliação: listar leads: %w", err)
	}

	// 1. Índice nome normalizado -> uid, escopo desta invocação.
	nameIndex := make(map[string]string, len(users))
	for _, u := range users {
		if key := NormalizeName(u.Name); key != "" {
			nameIndex[key] = u.UID
		}
	}

	// 2. Re-atribuição de apelidos históricos. Dedupe por id de lead: um
	// lead alcançado por duas variantes de apelido é atualizado uma vez só.
	updatedByAlias := map[string]bool{}
	var reattributions []OwnershipUpdate
	for _, alias := range aliases {
		fromKey := NormalizeName(alias.From)
		if fromKey == "" {
			continue
		}
		targetUID := alias.UID
		if targetUID == "" {
			targetUID = nameIndex[NormalizeName(alias.To)]
		}
		for _, l := range leads {
			if NormalizeName(l.SellerName) != fromKey || updatedByAlias[l.ID] {
				continue
			}
			newUID := l.UserID
			if targetUID != "" {
				newUID = targetUID
			}
			if l.SellerName == alias.To && l.UserID == newUID {
				continue // já canônico, nada a regravar
			}
			updatedByAlias[l.ID] = true
			reattributions = append(reattributions, OwnershipUpdate{
				LeadID:     l.ID,
				SellerUID:  newUID,
				SellerName: alias.To,
			})
			// Atualiza a cópia em memória para os passes seguintes.
			l.SellerName = alias.To
			l.UserID = newUID
		}
	}
	applied, err := r.writer.ApplyOwnership(ctx, reattributions)
	report.Reattributed = applied
	if err != nil {
		// Progresso parcial já gravado; re-rodar o job completa o restante.
		report.Success = false
		report.Errors = append(report.Errors, fmt.Sprintf("re-atribuição: %v", err))
		return report, nil
	}

	// 3. Vendedores órfãos: todo sellerName não-vazio sem entrada no índice
	// vira um usuário placeholder, inserido no índice imediatamente para o
	// passe 4 enxergá-lo.
	for _, l := range leads {
		key := NormalizeName(l.SellerName)
		if key == "" {
			continue
		}
		if _, ok := nameIndex[key]; ok {
			continue
		}
		now := time.Now()
		placeholder := &entity.User{
			UID:       uuid.New().String(),
			Name:      l.SellerName,
			PhotoURL:  entity.DefaultPhotoURL,
			Role:      entity.RoleSeller,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.userRepo.Create(placeholder); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("criar vendedor %q: %v", l.SellerName, err))
			continue
		}
		nameIndex[key] = placeholder.UID
		report.UsersCreated++
		r.log.Info().Str("uid", placeholder.UID).Str("name", placeholder.Name).
			Msg("vendedor placeholder criado pela reconciliação")
	}

	// 4. Sincronização global: dono divergente do índice é regravado.
	var syncs []OwnershipUpdate
	for _, l := range leads {
		key := NormalizeName(l.SellerName)
		if key == "" {
			continue
		}
		uid, ok := nameIndex[key]
		if !ok || l.UserID == uid {
			continue
		}
		syncs = append(syncs, OwnershipUpdate{
			LeadID:     l.ID,
			SellerUID:  uid,
			SellerName: l.SellerName,
		})
	}
	applied, err = r.writer.ApplyOwnership(ctx, syncs)
	report.Synced = applied
	if err != nil {
		report.Success = false
		report.Errors = append(report.Errors, fmt.Sprintf("sincronização: %v", err))
	}

	r.log.Info().
		Int("reattributed", report.Reattributed).
		Int("users_created", report.UsersCreated).
		Int("synced", report.Synced).
		Msg("reconciliação de vendedores concluída")
	return report, nil
}
