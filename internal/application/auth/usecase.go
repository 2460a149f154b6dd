package auth

import (
	"github.com/voluz/vendas-api/internal/application/dto"
	"github.com/voluz/vendas-api/internal/domain"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/repository"
	"github.com/voluz/vendas-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticação: login.
// Registro/gestão de contas fica fora deste núcleo.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, gera JWT e retorna token + usuário.
// Usuários com role pending não entram.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Role == entity.RolePending {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.UID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse converte a entidade para o DTO público.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		UID:            u.UID,
		Name:           u.Name,
		Email:          u.Email,
		PhotoURL:       u.PhotoURL,
		Role:           u.Role,
		UplineUID:      u.UplineUID,
		CommissionRate: u.EffectiveRate(),
		MlmEnabled:     u.MlmEnabled,
		CreatedAt:      u.CreatedAt,
	}
}
