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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nome, cpf, rfid, senha_hash, role, ativo, created_at, updated_at`

// UserRepo implementação do UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência para usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um usuário. CPF ou RFID duplicado vira ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO usuarios (id, nome, cpf, rfid, senha_hash, role, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nome, u.CPF, nullable(u.RFID), u.SenhaHash, u.Role, u.Ativo,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var rfid *string
	err := row.Scan(
		&u.ID, &u.Nome, &u.CPF, &rfid, &u.SenhaHash, &u.Role, &u.Ativo,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rfid != nil {
		u.RFID = *rfid
	}
	return &u, nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE ` + where
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByCPF obtém um usuário pelo CPF (único).
func (r *UserRepo) GetByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	return r.getOne(ctx, `cpf = $1`, cpf)
}

// GetByRFID obtém um usuário pela tag RFID.
func (r *UserRepo) GetByRFID(ctx context.Context, rfid string) (*entity.User, error) {
	return r.getOne(ctx, `rfid = $1`, rfid)
}

// List lista usuários.
func (r *UserRepo) List(ctx context.Context, ativo *bool, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE 1=1`
	args := []any{}
	pos := 1
	if ativo != nil {
		query += fmt.Sprintf(" AND ativo = $%d", pos)
		args = append(args, *ativo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY nome LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update atualiza um usuário.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET nome = $2, rfid = $3, senha_hash = $4, role = $5, ativo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nome, nullable(u.RFID), u.SenhaHash, u.Role, u.Ativo, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// Delete remove um usuário. Os eventos do ledger guardam snapshot e não
// são afetados.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}
