// Package commission implementa o cálculo de comissão pessoal e de rede
// (multinível) sobre leads finalizados.
package commission

import (
	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/referral"
)

// MaxNetworkLevels profundidade máxima da comissão de rede.
const MaxNetworkLevels = 4

// networkRates tabela nível -> percentual da comissão de rede.
var networkRates = map[int]decimal.Decimal{
	1: decimal.NewFromInt(5),
	2: decimal.NewFromInt(3),
	3: decimal.NewFromInt(2),
	4: decimal.NewFromInt(1),
}

var hundred = decimal.NewFromInt(100)

// NetworkRate devolve o percentual do nível, ou zero se fora da tabela.
func NetworkRate(level int) decimal.Decimal {
	if r, ok := networkRates[level]; ok {
		return r
	}
	return decimal.Zero
}

// Share uma parcela de comissão de rede creditada a um ancestral.
type Share struct {
	UID    string
	Level  int
	Amount decimal.Decimal
}

// Payout o conjunto completo de pagamentos gerado por um lead finalizado.
type Payout struct {
	LeadID   string
	OwnerUID string
	Personal decimal.Decimal
	Network  []Share
}

// Total soma comissão pessoal e todas as parcelas de rede.
func (p Payout) Total() decimal.Decimal {
	total := p.Personal
	for _, s := range p.Network {
		total = total.Add(s.Amount)
	}
	return total
}

// Personal calcula a comissão do dono direto do lead:
// valueAfterDiscount * taxa pessoal (default 40%) / 100.
func Personal(lead *entity.Lead, owner *entity.User) decimal.Decimal {
	rate := decimal.NewFromInt(int64(owner.EffectiveRate()))
	return lead.ValueAfterDiscount.Mul(rate).Div(hundred).Round(2)
}

// Network calcula as parcelas de rede subindo o upline do dono até 4 saltos.
//
// Um ancestral com MlmEnabled=false não ganha a parcela do seu nível, mas a
// caminhada continua: o flag desabilita apenas o ganho do próprio nó, não
// corta a propagação para quem está acima. Essa é uma escolha documentada;
// o caminho de atribuição e o de pagamento seguem a mesma regra.
func Network(lead *entity.Lead, ownerUID string, graph *referral.Graph) []Share {
	var shares []Share
	for _, node := range graph.Upline(ownerUID, MaxNetworkLevels) {
		if !node.User.MlmEnabled {
			continue
		}
		amount := lead.ValueAfterDiscount.Mul(NetworkRate(node.Level)).Div(hundred).Round(2)
		shares = append(shares, Share{
			UID:    node.User.UID,
			Level:  node.Level,
			Amount: amount,
		})
	}
	return shares
}

// Compute monta o Payout completo (pessoal + rede) de um lead finalizado.
// O chamador garante que o lead está elegível (finalizado + completedAt).
func Compute(lead *entity.Lead, owner *entity.User, graph *referral.Graph) Payout {
	return Payout{
		LeadID:   lead.ID,
		OwnerUID: owner.UID,
		Personal: Personal(lead, owner),
		Network:  Network(lead, owner.UID, graph),
	}
}
