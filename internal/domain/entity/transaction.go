package entity

import "time"

// Tipos de transação de custódia.
const (
	TransactionTypeRetirada  = "retirada"
	TransactionTypeDevolucao = "devolucao"
)

// UsuarioSnapshot é a cópia por valor dos dados do usuário no momento do
// evento. Nunca é uma referência viva: edições ou remoções posteriores do
// usuário não alteram o histórico.
type UsuarioSnapshot struct {
	ID   string
	Nome string
	CPF  string
}

// Transaction representa um evento de custódia (retirada ou devolução) no
// ledger. Eventos são imutáveis e append-only; correções administrativas
// geram um novo evento, nunca editam um existente.
type Transaction struct {
	ID          string
	Seq         int64 // ordem de inserção, desempate quando timestamps empatam
	ItemID      string
	Usuario     UsuarioSnapshot
	Tipo        string // retirada | devolucao
	Timestamp   time.Time
	Observacoes string
	CreatedAt   time.Time
}
