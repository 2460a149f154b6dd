package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound      = errors.New("recurso não encontrado")
	ErrUserNotFound  = errors.New("usuário não encontrado")
	ErrLeadNotFound  = errors.New("lead não encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrInvalidStage  = errors.New("etapa de pipeline inválida")
	ErrUnauthorized  = errors.New("não autorizado")
	ErrForbidden     = errors.New("acesso negado")
	ErrClaimConflict = errors.New("lead já foi atribuído a outro vendedor")
	ErrStageLocked   = errors.New("lead finalizado não pode retroceder de etapa")
	ErrNotFinalized  = errors.New("lead ainda não está finalizado")
)
