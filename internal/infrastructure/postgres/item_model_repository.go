package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

var _ repository.ItemModelRepository = (*ItemModelRepo)(nil)

const itemModelColumns = `id, nome, descricao, categoria, fabricante, ativo, created_at, updated_at`

// ItemModelRepo implementação do catálogo de modelos sobre PostgreSQL.
type ItemModelRepo struct {
	q Querier
}

// NewItemModelRepository constrói o adaptador.
func NewItemModelRepository(q Querier) *ItemModelRepo {
	return &ItemModelRepo{q: q}
}

// Create persiste um modelo. Nome duplicado vira ErrDuplicate.
func (r *ItemModelRepo) Create(ctx context.Context, m *entity.ItemModel) error {
	query := `
		INSERT INTO modelos (id, nome, descricao, categoria, fabricante, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Nome, nullable(m.Descricao), m.Categoria, nullable(m.Fabricante),
		m.Ativo, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert modelo: %w", err)
	}
	return nil
}

func scanItemModel(row pgx.Row) (*entity.ItemModel, error) {
	var m entity.ItemModel
	var descricao, fabricante *string
	err := row.Scan(
		&m.ID, &m.Nome, &descricao, &m.Categoria, &fabricante,
		&m.Ativo, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descricao != nil {
		m.Descricao = *descricao
	}
	if fabricante != nil {
		m.Fabricante = *fabricante
	}
	return &m, nil
}

func (r *ItemModelRepo) getOne(ctx context.Context, where string, arg any) (*entity.ItemModel, error) {
	query := `SELECT ` + itemModelColumns + ` FROM modelos WHERE ` + where
	m, err := scanItemModel(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get modelo: %w", err)
	}
	return m, nil
}

// GetByID obtém um modelo por ID.
func (r *ItemModelRepo) GetByID(ctx context.Context, id string) (*entity.ItemModel, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByNome obtém um modelo pelo nome (único).
func (r *ItemModelRepo) GetByNome(ctx context.Context, nome string) (*entity.ItemModel, error) {
	return r.getOne(ctx, `nome = $1`, nome)
}

// List lista modelos com filtros opcionais.
func (r *ItemModelRepo) List(ctx context.Context, categoria string, ativo *bool, limit, offset int) ([]*entity.ItemModel, error) {
	query := `SELECT ` + itemModelColumns + ` FROM modelos WHERE 1=1`
	args := []any{}
	pos := 1
	if categoria != "" {
		query += fmt.Sprintf(" AND categoria = $%d", pos)
		args = append(args, categoria)
		pos++
	}
	if ativo != nil {
		query += fmt.Sprintf(" AND ativo = $%d", pos)
		args = append(args, *ativo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY nome LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list modelos: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemModel
	for rows.Next() {
		m, err := scanItemModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan modelo: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update atualiza um modelo (nome fora do SET: imutável).
func (r *ItemModelRepo) Update(ctx context.Context, m *entity.ItemModel) error {
	query := `
		UPDATE modelos SET descricao = $2, categoria = $3, fabricante = $4, ativo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, nullable(m.Descricao), m.Categoria, nullable(m.Fabricante), m.Ativo, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update modelo: %w", err)
	}
	return nil
}

// Delete remove um modelo.
func (r *ItemModelRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM modelos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete modelo: %w", err)
	}
	return nil
}
