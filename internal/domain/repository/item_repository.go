package repository

import (
	"context"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// ItemFilter filtros opcionais para listagem de itens.
type ItemFilter struct {
	ModeloID string
	Ativo    *bool
	Limit    int
	Offset   int
}

// ItemRepository define a porta de persistência para Item.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByCodigoInterno(ctx context.Context, codigo string) (*entity.Item, error)
	GetByRFID(ctx context.Context, rfid string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	// MaxCodigoInterno retorna o maior código interno (ordem lexicográfica)
	// que começa com "prefixo-", ou "" se não existe nenhum.
	MaxCodigoInterno(ctx context.Context, prefixo string) (string, error)
}
