package usecase

import (
	"context"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

// CodigoTxRunner executa uma função dentro de uma transação de BD serializada
// por prefixo de código: duas criações concorrentes de item sob o mesmo
// prefixo nunca executam fn ao mesmo tempo, garantindo sufixos únicos sem
// tabela de contador.
type CodigoTxRunner interface {
	RunCodigo(ctx context.Context, prefixo string, fn func(itemRepo repository.ItemRepository) error) error
}
