package repository

import (
	"context"

	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// RfidPendingRepository define a porta de persistência para leituras RFID
// pendentes de vínculo.
type RfidPendingRepository interface {
	Upsert(ctx context.Context, pending *entity.RfidPending) error
	GetByRFID(ctx context.Context, rfid string) (*entity.RfidPending, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.RfidPending, error)
	UpdateStatus(ctx context.Context, rfid, status string) error
}
