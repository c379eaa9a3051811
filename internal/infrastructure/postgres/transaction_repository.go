package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, seq, item_id, usuario_id, usuario_nome, usuario_cpf, tipo, timestamp, observacoes, created_at`

// TransactionRepo implementação do ledger de custódia sobre PostgreSQL
// (usável com pool ou tx). Somente insert e leitura: o ledger é append-only.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create faz o append de um evento no ledger. Seq vem do bigserial e é
// devolvido preenchido na entidade (desempate de timestamps iguais).
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transacoes (id, item_id, usuario_id, usuario_nome, usuario_cpf, tipo, timestamp, observacoes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	observacoes := (*string)(nil)
	if t.Observacoes != "" {
		observacoes = &t.Observacoes
	}
	err := r.q.QueryRow(ctx, query,
		t.ID, t.ItemID, t.Usuario.ID, t.Usuario.Nome, t.Usuario.CPF,
		t.Tipo, t.Timestamp, observacoes, t.CreatedAt,
	).Scan(&t.Seq)
	if err != nil {
		return fmt.Errorf("insert transacao: %w", err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var observacoes *string
	err := row.Scan(
		&t.ID, &t.Seq, &t.ItemID, &t.Usuario.ID, &t.Usuario.Nome, &t.Usuario.CPF,
		&t.Tipo, &t.Timestamp, &observacoes, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if observacoes != nil {
		t.Observacoes = *observacoes
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transacao: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID obtém um evento por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transacoes WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transacao: %w", err)
	}
	return t, nil
}

// ListByItem lista os eventos de um item, do mais recente para o mais
// antigo. Desempate de timestamps iguais pela ordem de inserção (seq).
func (r *TransactionRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transacoes WHERE item_id = $1
		ORDER BY timestamp DESC, seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	return collectTransactions(rows)
}

// ListByUsuario lista os eventos atribuídos a um usuário (pelo snapshot).
func (r *TransactionRepo) ListByUsuario(ctx context.Context, usuarioID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transacoes WHERE usuario_id = $1
		ORDER BY timestamp DESC, seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, usuarioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by usuario: %w", err)
	}
	return collectTransactions(rows)
}

// List lista eventos com filtros opcionais (usuário, item, tipo, período).
func (r *TransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transacoes WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.UsuarioID != "" {
		query += fmt.Sprintf(" AND usuario_id = $%d", pos)
		args = append(args, filter.UsuarioID)
		pos++
	}
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filter.Tipo)
		pos++
	}
	if filter.DataInicio != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *filter.DataInicio)
		pos++
	}
	if filter.DataFim != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *filter.DataFim)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transacoes: %w", err)
	}
	return collectTransactions(rows)
}

// CountByUsuarioAndTipo conta eventos de um tipo atribuídos a um usuário.
func (r *TransactionRepo) CountByUsuarioAndTipo(ctx context.Context, usuarioID, tipo string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transacoes WHERE usuario_id = $1 AND tipo = $2`,
		usuarioID, tipo,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by usuario e tipo: %w", err)
	}
	return count, nil
}

// LatestPerItem retorna o evento mais recente de cada item com histórico.
func (r *TransactionRepo) LatestPerItem(ctx context.Context) ([]*entity.Transaction, error) {
	query := `
		SELECT DISTINCT ON (item_id) ` + transactionColumns + `
		FROM transacoes
		ORDER BY item_id, timestamp DESC, seq DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("latest per item: %w", err)
	}
	return collectTransactions(rows)
}
