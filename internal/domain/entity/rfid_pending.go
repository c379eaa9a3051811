package entity

import "time"

// Status de uma leitura RFID pendente.
const (
	RfidPendingPendente = "pendente"
	RfidPendingUsado    = "usado"
	RfidPendingExpirado = "expirado"
)

// RfidPending guarda uma tag lida por um sensor que ainda não pertence a
// nenhum item ou usuário, para ser vinculada depois no cadastro.
type RfidPending struct {
	ID        string
	RFID      string // único
	SensorID  string
	Status    string // pendente, usado, expirado
	CreatedAt time.Time
	UpdatedAt time.Time
}
