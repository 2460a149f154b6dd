package repository

import "github.com/voluz/vendas-api/internal/domain/entity"

// UserRepository define o porto de persistência para User (DIP).
// Métodos de leitura devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUID(uid string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// ListAll devolve o snapshot completo de usuários; é a fonte do
	// grafo de indicação e do índice de nomes da reconciliação.
	ListAll() ([]*entity.User, error)
	ListByRole(role string) ([]*entity.User, error)
}
