package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

var _ repository.RfidPendingRepository = (*RfidPendingRepo)(nil)

const rfidPendingColumns = `id, rfid, sensor_id, status, created_at, updated_at`

// RfidPendingRepo implementação da fila de RFIDs pendentes sobre PostgreSQL.
type RfidPendingRepo struct {
	q Querier
}

// NewRfidPendingRepository constrói o adaptador.
func NewRfidPendingRepository(q Querier) *RfidPendingRepo {
	return &RfidPendingRepo{q: q}
}

// Upsert grava uma leitura pendente; leitura repetida da mesma tag só
// atualiza o sensor e volta o status para pendente.
func (r *RfidPendingRepo) Upsert(ctx context.Context, p *entity.RfidPending) error {
	query := `
		INSERT INTO rfid_pendentes (id, rfid, sensor_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (rfid) DO UPDATE
		SET sensor_id = EXCLUDED.sensor_id, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.RFID, p.SensorID, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert rfid pendente: %w", err)
	}
	return nil
}

// GetByRFID obtém uma leitura pendente pela tag.
func (r *RfidPendingRepo) GetByRFID(ctx context.Context, rfid string) (*entity.RfidPending, error) {
	query := `SELECT ` + rfidPendingColumns + ` FROM rfid_pendentes WHERE rfid = $1`
	var p entity.RfidPending
	err := r.q.QueryRow(ctx, query, rfid).Scan(
		&p.ID, &p.RFID, &p.SensorID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rfid pendente: %w", err)
	}
	return &p, nil
}

// ListByStatus lista leituras por status.
func (r *RfidPendingRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.RfidPending, error) {
	query := `
		SELECT ` + rfidPendingColumns + `
		FROM rfid_pendentes WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rfid pendentes: %w", err)
	}
	defer rows.Close()
	var list []*entity.RfidPending
	for rows.Next() {
		var p entity.RfidPending
		if err := rows.Scan(&p.ID, &p.RFID, &p.SensorID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rfid pendente: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus muda o status de uma leitura (ex.: pendente -> usado).
func (r *RfidPendingRepo) UpdateStatus(ctx context.Context, rfid, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE rfid_pendentes SET status = $2, updated_at = NOW() WHERE rfid = $1`,
		rfid, status,
	)
	if err != nil {
		return fmt.Errorf("update status rfid pendente: %w", err)
	}
	return nil
}
