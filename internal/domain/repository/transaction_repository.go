package repository

import (
	"context"
	"time"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// TransactionFilter filtros opcionais para listagem de transações.
type TransactionFilter struct {
	UsuarioID  string
	ItemID     string
	Tipo       string
	DataInicio *time.Time
	DataFim    *time.Time
	Limit      int
	Offset     int
}

// TransactionRepository define a porta de persistência do ledger de custódia.
// O ledger é append-only: não há Update nem Delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// ListByItem retorna as transações do item ordenadas da mais recente para
	// a mais antiga (timestamp DESC, seq DESC como desempate).
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error)
	ListByUsuario(ctx context.Context, usuarioID string, limit, offset int) ([]*entity.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
	CountByUsuarioAndTipo(ctx context.Context, usuarioID, tipo string) (int, error)
	// LatestPerItem retorna, para cada item com pelo menos um evento, apenas o
	// evento mais recente.
	LatestPerItem(ctx context.Context) ([]*entity.Transaction, error)
}
