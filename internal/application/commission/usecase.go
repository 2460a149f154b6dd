// Package commission (application) orquestra o motor de comissão sobre os
// portos de persistência: cálculo por lead, ganhos do mês, saldos e
// liquidação em lote.
package commission

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/domain"
	domcommission "github.com/voluz/vendas-api/internal/domain/commission"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/referral"
	"github.com/voluz/vendas-api/internal/domain/repository"
)

// UseCase casos de uso de comissão.
type UseCase struct {
	userRepo repository.UserRepository
	leadRepo repository.LeadRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(userRepo repository.UserRepository, leadRepo repository.LeadRepository) *UseCase {
	return &UseCase{userRepo: userRepo, leadRepo: leadRepo}
}

func (uc *UseCase) graph() (*referral.Graph, error) {
	users, err := uc.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("snapshot de usuários: %w", err)
	}
	return referral.NewGraph(users), nil
}

// ComputeForLead calcula o conjunto completo de pagamentos de um lead.
// O lead precisa estar elegível: finalizado com completedAt gravado.
func (uc *UseCase) ComputeForLead(leadID string) (*dto.PayoutResponse, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	if !lead.CommissionEligible() {
		return nil, domain.ErrNotFinalized
	}
	g, err := uc.graph()
	if err != nil {
		return nil, err
	}
	owner := g.User(lead.UserID)
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	payout := domcommission.Compute(lead, owner, g)
	return payoutToResponse(payout), nil
}

// MonthlyGains agrega "os ganhos deste mês" de uid: comissão pessoal dos
// próprios leads mais parcelas de rede dos leads do downline, contando
// somente leads finalizados dentro do mês-calendário corrente.
func (uc *UseCase) MonthlyGains(uid string) (*dto.MonthlyGainsResponse, error) {
	return uc.monthlyGainsAt(uid, time.Now())
}

func (uc *UseCase) monthlyGainsAt(uid string, ref time.Time) (*dto.MonthlyGainsResponse, error) {
	g, err := uc.graph()
	if err != nil {
		return nil, err
	}
	me := g.User(uid)
	if me == nil {
		return nil, domain.ErrUserNotFound
	}

	leads, err := uc.teamLeads(g, uid)
	if err != nil {
		return nil, err
	}

	personal := decimal.Zero
	network := decimal.Zero
	counted := 0
	for _, l := range leads {
		if l.Stage != entity.StageFinalizado || !l.CompletedInMonth(ref) {
			continue
		}
		counted++
		p, n := uc.gainsForLead(g, me, l)
		personal = personal.Add(p)
		network = network.Add(n)
	}
	return &dto.MonthlyGainsResponse{
		UID:          uid,
		Personal:     personal,
		Network:      network,
		Total:        personal.Add(network),
		LeadsCounted: counted,
		MonthLabel:   monthLabel(ref),
	}, nil
}

// Balances agrega os saldos all-time de uid particionados por liquidação:
// pendente (commissionPaid=false) e liquidado (true). Sem janela de tempo.
func (uc *UseCase) Balances(uid string) (*dto.BalancesResponse, error) {
	g, err := uc.graph()
	if err != nil {
		return nil, err
	}
	me := g.User(uid)
	if me == nil {
		return nil, domain.ErrUserNotFound
	}
	leads, err := uc.teamLeads(g, uid)
	if err != nil {
		return nil, err
	}

	pending := decimal.Zero
	settled := decimal.Zero
	for _, l := range leads {
		if !l.CommissionEligible() {
			continue
		}
		p, n := uc.gainsForLead(g, me, l)
		amount := p.Add(n)
		if l.CommissionPaid {
			settled = settled.Add(amount)
		} else {
			pending = pending.Add(amount)
		}
	}
	return &dto.BalancesResponse{UID: uid, Pending: pending, Settled: settled}, nil
}

// SettleLeads marca comissões como liquidadas em lote. Erros de linha não
// abortam o job: entram no relatório e o restante continua.
func (uc *UseCase) SettleLeads(leadIDs []string) *dto.SettleReport {
	report := &dto.SettleReport{Success: true}
	for _, id := range leadIDs {
		lead, err := uc.leadRepo.GetByID(id)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		if lead == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: lead não encontrado", id))
			continue
		}
		if !lead.CommissionEligible() {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: lead não finalizado", id))
			continue
		}
		if lead.CommissionPaid {
			report.Skipped++
			continue
		}
		if err := uc.leadRepo.SetCommissionPaid(id, true); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		report.Settled++
	}
	return report
}

// teamLeads devolve os leads de {uid} ∪ downline(uid).
func (uc *UseCase) teamLeads(g *referral.Graph, uid string) ([]*entity.Lead, error) {
	nodes := g.Downline(uid)
	ids := make([]string, 0, len(nodes)+1)
	ids = append(ids, uid)
	for _, n := range nodes {
		ids = append(ids, n.User.UID)
	}
	return uc.leadRepo.ListByOwners(ids)
}

// gainsForLead devolve (pessoal, rede) que o lead rende para me: pessoal
// se me é o dono; parcela de rede se me é ancestral elegível do dono.
func (uc *UseCase) gainsForLead(g *referral.Graph, me *entity.User, l *entity.Lead) (decimal.Decimal, decimal.Decimal) {
	if l.UserID == me.UID {
		return domcommission.Personal(l, me), decimal.Zero
	}
	for _, share := range domcommission.Network(l, l.UserID, g) {
		if share.UID == me.UID {
			return decimal.Zero, share.Amount
		}
	}
	return decimal.Zero, decimal.Zero
}

func payoutToResponse(p domcommission.Payout) *dto.PayoutResponse {
	shares := make([]dto.NetworkShareDTO, 0, len(p.Network))
	for _, s := range p.Network {
		shares = append(shares, dto.NetworkShareDTO{UID: s.UID, Level: s.Level, Amount: s.Amount})
	}
	return &dto.PayoutResponse{
		LeadID:   p.LeadID,
		OwnerUID: p.OwnerUID,
		Personal: p.Personal,
		Network:  shares,
		Total:    p.Total(),
	}
}

func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
