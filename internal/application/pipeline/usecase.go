// Package pipeline contém os casos de uso do pipeline de vendas:
// intake, claim, movimentação de etapa e fechamento de leads.
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/domain"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/repository"
)

// UseCase aplica as regras da máquina de estados do pipeline.
type UseCase struct {
	leadRepo repository.LeadRepository
	userRepo repository.UserRepository
}

// NewUseCase constrói o caso de uso com os portos de persistência.
func NewUseCase(leadRepo repository.LeadRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{leadRepo: leadRepo, userRepo: userRepo}
}

// CreateLead cria um lead sem dono (intake externo). Etapas permitidas na
// criação: para-atribuir (default) e para-validacao.
func (uc *UseCase) CreateLead(in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	stage := in.Stage
	if stage == "" {
		stage = entity.StageParaAtribuir
	}
	if stage != entity.StageParaAtribuir && stage != entity.StageParaValidacao {
		return nil, domain.ErrInvalidStage
	}
	now := time.Now()
	lead := &entity.Lead{
		ID:                 uuid.New().String(),
		UserID:             entity.UserUnassigned,
		SellerName:         in.SellerName,
		Stage:              stage,
		Value:              in.Value,
		ValueAfterDiscount: in.Value,
		KWh:                in.KWh,
		CreatedAt:          now,
		LastContact:        now,
	}
	if err := uc.leadRepo.Create(lead); err != nil {
		return nil, err
	}
	return LeadToResponse(lead), nil
}

// Claim atribui um lead sem dono ao vendedor. A escrita é condicional no
// store: se outro vendedor venceu a corrida, o perdedor recebe
// ErrClaimConflict e o dono não muda. No sucesso a etapa vai de
// para-atribuir para contato, com uid e nome gravados juntos.
func (uc *UseCase) Claim(leadID, sellerUID string) error {
	seller, err := uc.userRepo.GetByUID(sellerUID)
	if err != nil {
		return err
	}
	if seller == nil {
		return domain.ErrUserNotFound
	}

	ok, err := uc.leadRepo.ClaimUnassigned(leadID, seller.UID, seller.Name, time.Now())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// A precondição falhou: distinguir lead inexistente de corrida perdida.
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrLeadNotFound
	}
	return domain.ErrClaimConflict
}

// MoveStage move um lead de etapa. Admin/superadmin movem qualquer lead;
// vendedores somente os próprios. Qualquer etapa não-terminal pode ir para
// qualquer outra; sair de finalizado é erro (a comissão pode já estar
// liquidada). Escritas concorrentes são last-writer-wins.
func (uc *UseCase) MoveStage(actorUID, actorRole, leadID, newStage string) error {
	if !entity.ValidStage(newStage) {
		return domain.ErrInvalidStage
	}
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrLeadNotFound
	}
	if lead.Stage == entity.StageFinalizado && newStage != entity.StageFinalizado {
		return domain.ErrStageLocked
	}
	admin := actorRole == entity.RoleAdmin || actorRole == entity.RoleSuperAdmin
	if !admin && lead.UserID != actorUID {
		return domain.ErrForbidden
	}
	return uc.leadRepo.UpdateStage(leadID, newStage)
}

// RecordCompletion fecha o negócio: etapa finalizado, completedAt e valor
// final com desconto. Idempotente: repetir com o mesmo completedAt não
// duplica agregados, pois as agregações mensais usam o mês-calendário de
// completedAt e não um contador de mutações.
func (uc *UseCase) RecordCompletion(leadID string, completedAt time.Time, valueAfterDiscount decimal.Decimal) error {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrLeadNotFound
	}
	return uc.leadRepo.RecordCompletion(leadID, completedAt, valueAfterDiscount)
}

// LeadToResponse converte a entidade para o DTO público.
func LeadToResponse(l *entity.Lead) *dto.LeadResponse {
	if l == nil {
		return nil
	}
	return &dto.LeadResponse{
		ID:                 l.ID,
		UserID:             l.UserID,
		SellerName:         l.SellerName,
		Stage:              l.Stage,
		Value:              l.Value,
		ValueAfterDiscount: l.ValueAfterDiscount,
		KWh:                l.KWh,
		CommissionPaid:     l.CommissionPaid,
		CreatedAt:          l.CreatedAt,
		LastContact:        l.LastContact,
		SignedAt:           l.SignedAt,
		CompletedAt:        l.CompletedAt,
	}
}
