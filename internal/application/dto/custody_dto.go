package dto

import "time"

// CreateTransactionRequest registra uma retirada ou devolução.
// UsuarioID vazio = usuário autenticado do token.
type CreateTransactionRequest struct {
	ItemID      string `json:"item_id"`
	UsuarioID   string `json:"usuario_id"`
	Tipo        string `json:"tipo"` // retirada | devolucao
	Observacoes string `json:"observacoes"`
}

// UsuarioSnapshotDTO snapshot do usuário gravado no evento.
type UsuarioSnapshotDTO struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	CPF  string `json:"cpf"`
}

// TransactionResponse evento do ledger de custódia.
type TransactionResponse struct {
	ID          string             `json:"id"`
	ItemID      string             `json:"item_id"`
	Usuario     UsuarioSnapshotDTO `json:"usuario"`
	Tipo        string             `json:"tipo"`
	Timestamp   time.Time          `json:"timestamp"`
	Observacoes string             `json:"observacoes,omitempty"`
}

// ItemStatusResponse estado derivado de um item.
type ItemStatusResponse struct {
	Disponivel      bool                 `json:"disponivel"`
	UltimaTransacao *TransactionResponse `json:"ultima_transacao,omitempty"`
}

// CurrentHolderResponse quem está com o item e desde quando.
type CurrentHolderResponse struct {
	Usuario *UsuarioSnapshotDTO `json:"usuario,omitempty"`
	Desde   *time.Time          `json:"desde,omitempty"`
}

// RfidLeituraRequest leitura enviada por um sensor RFID.
type RfidLeituraRequest struct {
	RFID     string `json:"rfid"`
	SensorID string `json:"sensor_id"`
}

// RfidPendingResponse tag pendente de vínculo.
type RfidPendingResponse struct {
	ID        string    `json:"id"`
	RFID      string    `json:"rfid"`
	SensorID  string    `json:"sensor_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
