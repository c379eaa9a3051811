package entity

import "time"

// Item representa um ativo físico individual (ferramenta, EPI).
// CodigoInterno é único e imutável depois de atribuído; a disponibilidade
// nunca é gravada aqui — é sempre derivada do último evento do ledger.
type Item struct {
	ID            string
	CodigoInterno string // PREFIXO-NNNNN
	ModeloID      string
	RFID          string // opcional; único quando presente
	Localizacao   string
	Ativo         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
