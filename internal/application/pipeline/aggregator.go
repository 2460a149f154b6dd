package pipeline

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/referral"
	"github.com/voluz/vendas-api/internal/domain/repository"
)

// Aggregator compõe o grafo de indicação com o store de leads para
// responder "os leads do meu time / os totais do meu time" sem re-derivar
// o grafo em cada ponto de consulta.
type Aggregator struct {
	userRepo repository.UserRepository
	leadRepo repository.LeadRepository
}

// NewAggregator constrói o agregador.
func NewAggregator(userRepo repository.UserRepository, leadRepo repository.LeadRepository) *Aggregator {
	return &Aggregator{userRepo: userRepo, leadRepo: leadRepo}
}

// graph monta o snapshot da rede para esta requisição.
func (a *Aggregator) graph() (*referral.Graph, error) {
	users, err := a.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("snapshot de usuários: %w", err)
	}
	return referral.NewGraph(users), nil
}

// TeamForUser devolve o downline completo de uid com níveis.
func (a *Aggregator) TeamForUser(uid string) ([]dto.TeamMemberResponse, error) {
	g, err := a.graph()
	if err != nil {
		return nil, err
	}
	nodes := g.Downline(uid)
	team := make([]dto.TeamMemberResponse, 0, len(nodes))
	for _, n := range nodes {
		team = append(team, dto.TeamMemberResponse{
			UserResponse: dto.UserResponse{
				UID:            n.User.UID,
				Name:           n.User.Name,
				Email:          n.User.Email,
				PhotoURL:       n.User.PhotoURL,
				Role:           n.User.Role,
				UplineUID:      n.User.UplineUID,
				CommissionRate: n.User.EffectiveRate(),
				MlmEnabled:     n.User.MlmEnabled,
				CreatedAt:      n.User.CreatedAt,
			},
			Level: n.Level,
		})
	}
	return team, nil
}

// LeadsForTeam devolve os leads cujo dono é uid ou alguém do seu downline.
// O conjunto de ids vai ao store em blocos (IN-clause limitado) e os
// resultados são unidos — o particionamento fica no adaptador.
func (a *Aggregator) LeadsForTeam(uid string) ([]*entity.Lead, error) {
	g, err := a.graph()
	if err != nil {
		return nil, err
	}
	ids := teamIDs(g, uid)
	return a.leadRepo.ListByOwners(ids)
}

// Summary monta os números do dashboard de equipe do mês corrente.
func (a *Aggregator) Summary(uid string) (*dto.TeamSummaryResponse, error) {
	g, err := a.graph()
	if err != nil {
		return nil, err
	}
	downline := g.Downline(uid)
	leads, err := a.leadRepo.ListByOwners(teamIDs(g, uid))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &dto.TeamSummaryResponse{
		TeamSize:                len(downline),
		TotalLeads:              len(leads),
		ActiveLeads:             ActiveCount(leads),
		FinalizedThisMonth:      len(FinalizedInMonth(leads, now)),
		ValueFinalizedThisMonth: ValueFinalizedInMonth(leads, now),
		MonthLabel:              monthLabel(now),
	}, nil
}

// teamIDs devolve {uid} ∪ downline(uid).
func teamIDs(g *referral.Graph, uid string) []string {
	nodes := g.Downline(uid)
	ids := make([]string, 0, len(nodes)+1)
	ids = append(ids, uid)
	for _, n := range nodes {
		ids = append(ids, n.User.UID)
	}
	return ids
}

// ActiveCount conta leads em etapas ativas (fora de finalizado, perdido,
// assinado e cancelado).
func ActiveCount(leads []*entity.Lead) int {
	count := 0
	for _, l := range leads {
		if entity.ActiveStage(l.Stage) {
			count++
		}
	}
	return count
}

// FinalizedInMonth filtra leads finalizados dentro do mês-calendário de ref.
func FinalizedInMonth(leads []*entity.Lead, ref time.Time) []*entity.Lead {
	var out []*entity.Lead
	for _, l := range leads {
		if l.Stage == entity.StageFinalizado && l.CompletedInMonth(ref) {
			out = append(out, l)
		}
	}
	return out
}

// ValueFinalizedInMonth soma valueAfterDiscount dos finalizados no mês de ref.
func ValueFinalizedInMonth(leads []*entity.Lead, ref time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, l := range FinalizedInMonth(leads, ref) {
		total = total.Add(l.ValueAfterDiscount)
	}
	return total
}

// monthLabel devolve uma etiqueta legível do mês, ex: "Setembro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
