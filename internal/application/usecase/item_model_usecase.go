package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

// ItemModelUseCase CRUD de modelos de item.
type ItemModelUseCase struct {
	repo repository.ItemModelRepository
}

// NewItemModelUseCase constrói o caso de uso.
func NewItemModelUseCase(repo repository.ItemModelRepository) *ItemModelUseCase {
	return &ItemModelUseCase{repo: repo}
}

func categoriaValida(c string) bool {
	return c == entity.CategoriaFerramenta || c == entity.CategoriaEPI || c == entity.CategoriaOutros
}

// Create cadastra um modelo. Nome é único: ele é a base do prefixo dos
// códigos internos dos itens.
func (uc *ItemModelUseCase) Create(ctx context.Context, in dto.CreateItemModelRequest) (*entity.ItemModel, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" || !categoriaValida(in.Categoria) {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.repo.GetByNome(ctx, nome)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	modelo := &entity.ItemModel{
		ID:         uuid.New().String(),
		Nome:       nome,
		Descricao:  in.Descricao,
		Categoria:  in.Categoria,
		Fabricante: in.Fabricante,
		Ativo:      true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, modelo); err != nil {
		return nil, err
	}
	return modelo, nil
}

// GetByID obtém um modelo por ID.
func (uc *ItemModelUseCase) GetByID(ctx context.Context, id string) (*entity.ItemModel, error) {
	modelo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if modelo == nil {
		return nil, domain.ErrNotFound
	}
	return modelo, nil
}

// List lista modelos com filtros opcionais.
func (uc *ItemModelUseCase) List(ctx context.Context, categoria string, ativo *bool, limit, offset int) ([]*entity.ItemModel, error) {
	return uc.repo.List(ctx, categoria, ativo, limit, offset)
}

// Update atualiza um modelo. O Nome é imutável de propósito: renomear não
// renumeraria códigos já atribuídos e quebraria a correspondência prefixo-nome.
func (uc *ItemModelUseCase) Update(ctx context.Context, id string, in dto.UpdateItemModelRequest) (*entity.ItemModel, error) {
	modelo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if modelo == nil {
		return nil, domain.ErrNotFound
	}
	if in.Categoria != nil {
		if !categoriaValida(*in.Categoria) {
			return nil, domain.ErrInvalidInput
		}
		modelo.Categoria = *in.Categoria
	}
	if in.Descricao != nil {
		modelo.Descricao = *in.Descricao
	}
	if in.Fabricante != nil {
		modelo.Fabricante = *in.Fabricante
	}
	if in.Ativo != nil {
		modelo.Ativo = *in.Ativo
	}
	modelo.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, modelo); err != nil {
		return nil, err
	}
	return modelo, nil
}

// Delete remove um modelo.
func (uc *ItemModelUseCase) Delete(ctx context.Context, id string) error {
	modelo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if modelo == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
