package repository

import (
	"context"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// UserRepository define a porta de persistência para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByCPF(ctx context.Context, cpf string) (*entity.User, error)
	GetByRFID(ctx context.Context, rfid string) (*entity.User, error)
	List(ctx context.Context, ativo *bool, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
