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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, codigo_interno, modelo_id, rfid, localizacao, ativo, created_at, updated_at`

// ItemRepo implementação do catálogo de itens sobre PostgreSQL
// (usável com pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste um item. Violação dos índices únicos (codigo_interno,
// rfid) vira ErrDuplicate — é assim que o perdedor de uma corrida de
// cadastro recebe um erro tipado em vez de gravar código repetido.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO itens (id, codigo_interno, modelo_id, rfid, localizacao, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.CodigoInterno, item.ModeloID, nullable(item.RFID),
		nullable(item.Localizacao), item.Ativo, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var rfid, localizacao *string
	err := row.Scan(
		&i.ID, &i.CodigoInterno, &i.ModeloID, &rfid, &localizacao,
		&i.Ativo, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rfid != nil {
		i.RFID = *rfid
	}
	if localizacao != nil {
		i.Localizacao = *localizacao
	}
	return &i, nil
}

func (r *ItemRepo) getOne(ctx context.Context, where string, arg any) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM itens WHERE ` + where
	item, err := scanItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByID obtém um item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByCodigoInterno obtém um item pelo código interno.
func (r *ItemRepo) GetByCodigoInterno(ctx context.Context, codigo string) (*entity.Item, error) {
	return r.getOne(ctx, `codigo_interno = $1`, codigo)
}

// GetByRFID obtém um item pela tag RFID.
func (r *ItemRepo) GetByRFID(ctx context.Context, rfid string) (*entity.Item, error) {
	return r.getOne(ctx, `rfid = $1`, rfid)
}

// List lista itens com filtros opcionais.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM itens WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ModeloID != "" {
		query += fmt.Sprintf(" AND modelo_id = $%d", pos)
		args = append(args, filter.ModeloID)
		pos++
	}
	if filter.Ativo != nil {
		query += fmt.Sprintf(" AND ativo = $%d", pos)
		args = append(args, *filter.Ativo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY codigo_interno LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list itens: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update atualiza os campos mutáveis do item. O codigo_interno fica fora
// do SET: imutável depois de atribuído.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE itens SET rfid = $2, localizacao = $3, ativo = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, nullable(item.RFID), nullable(item.Localizacao), item.Ativo, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete remove um item.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM itens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// MaxCodigoInterno retorna o maior código (ordem lexicográfica) com o
// prefixo dado, ou "" se não há nenhum. O filtro é por LIKE de propósito:
// um código malformado sob o prefixo deve aparecer aqui e falhar a
// validação na aplicação, não ser pulado em silêncio.
func (r *ItemRepo) MaxCodigoInterno(ctx context.Context, prefixo string) (string, error) {
	var max string
	err := r.q.QueryRow(ctx,
		`SELECT codigo_interno FROM itens WHERE codigo_interno LIKE $1 || '-%' ORDER BY codigo_interno DESC LIMIT 1`,
		prefixo,
	).Scan(&max)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo interno: %w", err)
	}
	return max, nil
}

// nullable converte "" em NULL para colunas opcionais com índice único
// parcial (rfid).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
