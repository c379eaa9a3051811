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

// RfidUseCase processa leituras de sensores RFID. O sensor é apenas uma
// fonte de eventos {rfid, sensor_id}; o protocolo de hardware fica fora
// daqui.
type RfidUseCase struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	rfidRepo repository.RfidPendingRepository
}

// NewRfidUseCase constrói o caso de uso.
func NewRfidUseCase(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	rfidRepo repository.RfidPendingRepository,
) *RfidUseCase {
	return &RfidUseCase{itemRepo: itemRepo, userRepo: userRepo, rfidRepo: rfidRepo}
}

// LeituraResultDTO resultado de uma leitura: a tag resolve para um item,
// para um usuário, ou vai para a fila de pendentes.
type LeituraResultDTO struct {
	Item     *entity.Item
	Usuario  *entity.User
	Pendente *entity.RfidPending
}

// RegistrarLeitura resolve a tag lida. Tag desconhecida entra (ou permanece)
// na fila de pendentes para vínculo posterior no cadastro.
func (uc *RfidUseCase) RegistrarLeitura(ctx context.Context, in dto.RfidLeituraRequest) (*LeituraResultDTO, error) {
	rfid := strings.TrimSpace(in.RFID)
	if rfid == "" || in.SensorID == "" {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return &LeituraResultDTO{Item: item}, nil
	}

	user, err := uc.userRepo.GetByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return &LeituraResultDTO{Usuario: user}, nil
	}

	now := time.Now()
	pendente := &entity.RfidPending{
		ID:        uuid.New().String(),
		RFID:      rfid,
		SensorID:  in.SensorID,
		Status:    entity.RfidPendingPendente,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.rfidRepo.Upsert(ctx, pendente); err != nil {
		return nil, err
	}
	return &LeituraResultDTO{Pendente: pendente}, nil
}

// ListPendentes lista tags aguardando vínculo.
func (uc *RfidUseCase) ListPendentes(ctx context.Context, limit, offset int) ([]*entity.RfidPending, error) {
	return uc.rfidRepo.ListByStatus(ctx, entity.RfidPendingPendente, limit, offset)
}
