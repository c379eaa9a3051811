package repository

import (
	"context"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// ItemModelRepository define a porta de persistência para ItemModel.
type ItemModelRepository interface {
	Create(ctx context.Context, modelo *entity.ItemModel) error
	GetByID(ctx context.Context, id string) (*entity.ItemModel, error)
	GetByNome(ctx context.Context, nome string) (*entity.ItemModel, error)
	List(ctx context.Context, categoria string, ativo *bool, limit, offset int) ([]*entity.ItemModel, error)
	Update(ctx context.Context, modelo *entity.ItemModel) error
	Delete(ctx context.Context, id string) error
}
