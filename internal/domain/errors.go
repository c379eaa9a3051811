package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound         = errors.New("recurso não encontrado")
	ErrUsuarioNotFound  = errors.New("usuário não encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("não autorizado")
	ErrForbidden        = errors.New("acesso negado")
	ErrConflict         = errors.New("conflito com o estado atual")
	ErrItemEmUso        = errors.New("o item já está em uso e não foi devolvido")
	ErrCodigoCorrompido = errors.New("código interno existente em formato inválido")
)
