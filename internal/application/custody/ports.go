package custody

import (
	"context"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD serializada por
// item: o runner adquire exclusão mútua para o itemID (advisory lock
// transacional) antes de chamar fn com o repositório atado à transação.
// Duas chamadas concorrentes para o mesmo item nunca executam fn ao mesmo
// tempo; o append do ledger é all-or-nothing (Commit/Rollback).
type TxRunner interface {
	RunTransacao(ctx context.Context, itemID string, fn func(txRepo repository.TransactionRepository) error) error
}
