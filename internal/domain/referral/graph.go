// Package referral centraliza a travessia da rede de indicação.
// Toda pergunta de hierarquia (downline, nível, upline) passa por aqui,
// de modo que as proteções contra ciclo e profundidade vivem num lugar só.
package referral

import "github.com/voluz/vendas-api/internal/domain/entity"

// MaxDepth limite de saltos em qualquer caminhada de upline. Dados
// corrompidos (ciclo acidental gravado por fora) falham de forma segura
// em vez de travar a requisição.
const MaxDepth = 64

// Node um usuário descoberto na travessia, com a distância em saltos
// a partir da raiz (indicado direto = nível 1).
type Node struct {
	User  *entity.User
	Level int
}

// Graph é um snapshot imutável da rede de indicação, construído uma vez
// por requisição a partir do conjunto de usuários.
type Graph struct {
	byUID    map[string]*entity.User
	children map[string][]*entity.User // uplineUID -> indicados diretos
}

// NewGraph indexa o snapshot de usuários. UplineUID apontando para um
// usuário inexistente é tratado como "upline ausente", não como erro.
func NewGraph(users []*entity.User) *Graph {
	g := &Graph{
		byUID:    make(map[string]*entity.User, len(users)),
		children: make(map[string][]*entity.User),
	}
	for _, u := range users {
		g.byUID[u.UID] = u
	}
	for _, u := range users {
		if u.UplineUID == "" {
			continue
		}
		g.children[u.UplineUID] = append(g.children[u.UplineUID], u)
	}
	return g
}

// User devolve o usuário do snapshot, ou nil.
func (g *Graph) User(uid string) *entity.User {
	return g.byUID[uid]
}

// Downline faz BFS a partir de rootUID e devolve todos os descendentes
// com seus níveis (indicado direto = 1, +1 por salto). A raiz não entra
// no resultado. O visited-set garante terminação mesmo se os dados
// contiverem um ciclo acidental.
func (g *Graph) Downline(rootUID string) []Node {
	visited := map[string]bool{rootUID: true}
	var result []Node

	type frontier struct {
		uid   string
		level int
	}
	queue := []frontier{{uid: rootUID, level: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range g.children[cur.uid] {
			if visited[child.UID] {
				continue
			}
			visited[child.UID] = true
			result = append(result, Node{User: child, Level: cur.level + 1})
			queue = append(queue, frontier{uid: child.UID, level: cur.level + 1})
		}
	}
	return result
}

// Level caminha por UplineUID a partir de targetUID contando saltos até
// alcançar rootUID. Devolve (nível, true) em caso de sucesso; (0, false)
// se a caminhada chegar a um upline vazio/ausente ou estourar MaxDepth
// ("não está nesta hierarquia").
func (g *Graph) Level(rootUID, targetUID string) (int, bool) {
	if rootUID == targetUID {
		return 0, true
	}
	cur := g.byUID[targetUID]
	for hops := 1; hops <= MaxDepth; hops++ {
		if cur == nil || cur.UplineUID == "" {
			return 0, false
		}
		if cur.UplineUID == rootUID {
			return hops, true
		}
		cur = g.byUID[cur.UplineUID]
	}
	return 0, false
}

// Upline caminha a partir de uid em direção à raiz e devolve até maxHops
// ancestrais (nível 1 = upline direto). Upline apontando para usuário
// inexistente encerra a caminhada ali.
func (g *Graph) Upline(uid string, maxHops int) []Node {
	if maxHops > MaxDepth {
		maxHops = MaxDepth
	}
	var result []Node
	visited := map[string]bool{uid: true}

	cur := g.byUID[uid]
	for level := 1; level <= maxHops; level++ {
		if cur == nil || cur.UplineUID == "" {
			break
		}
		parent := g.byUID[cur.UplineUID]
		if parent == nil || visited[parent.UID] {
			break
		}
		visited[parent.UID] = true
		result = append(result, Node{User: parent, Level: level})
		cur = parent
	}
	return result
}
