package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleSeller     = "seller"
	RoleProspector = "prospector"
	RoleLawyer     = "lawyer"
	RolePending    = "pending"
)

// DefaultCommissionRate percentual pessoal aplicado quando o usuário não tem taxa própria.
const DefaultCommissionRate = 40

// DefaultPhotoURL foto de placeholder para usuários criados pela reconciliação.
const DefaultPhotoURL = "/assets/avatar-default.png"

// User representa um usuário do sistema (vendedor, admin, etc.).
//
// UplineUID é uma referência fraca ao indicador (quem trouxe este usuário
// para a rede). Não há ownership: seguir UplineUID repetidamente a partir de
// qualquer usuário deve terminar — a rede é uma floresta, nunca um ciclo.
type User struct {
	UID            string
	Name           string
	Email          string
	PasswordHash   string // bcrypt, nunca em claro depois de persistir
	PhotoURL       string
	Role           string // ver constantes Role*
	UplineUID      string // vazio = raiz da sua árvore
	CommissionRate *int   // percentual pessoal; nil = DefaultCommissionRate
	MlmEnabled     bool   // se false, este nó não ganha comissão de rede
	PendingBalance decimal.Decimal
	SettledBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveRate devolve a taxa pessoal do usuário aplicando o default de 40%.
// Taxa ausente é uma leniência deliberada, não um erro de configuração.
func (u *User) EffectiveRate() int {
	if u.CommissionRate == nil {
		return DefaultCommissionRate
	}
	return *u.CommissionRate
}

// IsAdmin indica se o usuário pode mover qualquer lead do pipeline.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// ValidRole verifica se o role pertence ao enum fechado.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin, RoleSeller, RoleProspector, RoleLawyer, RolePending:
		return true
	}
	return false
}
