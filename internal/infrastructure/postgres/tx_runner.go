package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	appusecase "github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

var _ custody.TxRunner = (*TxRunner)(nil)
var _ appusecase.CodigoTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL com
// exclusão mútua por chave via advisory lock transacional. O lock é
// liberado automaticamente no Commit/Rollback; cancelamento do ctx aborta
// a transação inteira, então nunca fica evento meio gravado.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) runLocked(ctx context.Context, key string, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey(key)); err != nil {
		return fmt.Errorf("advisory lock %q: %w", key, err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransacao serializa por item: lê-valida-grava do ledger sob o lock
// "item:<id>". Duas retiradas concorrentes do mesmo item nunca passam juntas.
func (r *TxRunner) RunTransacao(ctx context.Context, itemID string, fn func(txRepo repository.TransactionRepository) error) error {
	return r.runLocked(ctx, "item:"+itemID, func(q Querier) error {
		return fn(NewTransactionRepository(q))
	})
}

// RunCodigo serializa por prefixo de código: busca do máximo + insert do
// item sob o lock "codigo:<prefixo>", garantindo sufixos únicos.
func (r *TxRunner) RunCodigo(ctx context.Context, prefixo string, fn func(itemRepo repository.ItemRepository) error) error {
	return r.runLocked(ctx, "codigo:"+prefixo, func(q Querier) error {
		return fn(NewItemRepository(q))
	})
}
