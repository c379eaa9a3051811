package http

import (
	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Nome:      u.Nome,
		CPF:       u.CPF,
		RFID:      u.RFID,
		Role:      u.Role,
		Ativo:     u.Ativo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            i.ID,
		CodigoInterno: i.CodigoInterno,
		ModeloID:      i.ModeloID,
		RFID:          i.RFID,
		Localizacao:   i.Localizacao,
		Ativo:         i.Ativo,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toItemModelResponse(m *entity.ItemModel) dto.ItemModelResponse {
	return dto.ItemModelResponse{
		ID:         m.ID,
		Nome:       m.Nome,
		Descricao:  m.Descricao,
		Categoria:  m.Categoria,
		Fabricante: m.Fabricante,
		Ativo:      m.Ativo,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:     t.ID,
		ItemID: t.ItemID,
		Usuario: dto.UsuarioSnapshotDTO{
			ID:   t.Usuario.ID,
			Nome: t.Usuario.Nome,
			CPF:  t.Usuario.CPF,
		},
		Tipo:        t.Tipo,
		Timestamp:   t.Timestamp,
		Observacoes: t.Observacoes,
	}
}

func toTransactionResponses(list []*entity.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

func toRfidPendingResponse(p *entity.RfidPending) dto.RfidPendingResponse {
	return dto.RfidPendingResponse{
		ID:        p.ID,
		RFID:      p.RFID,
		SensorID:  p.SensorID,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
