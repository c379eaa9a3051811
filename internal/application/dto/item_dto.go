package dto

import "time"

// RegisterItemRequest cadastro de item. CodigoInterno em branco = gerado
// automaticamente a partir do nome do modelo.
type RegisterItemRequest struct {
	ModeloID      string `json:"modelo_id"`
	CodigoInterno string `json:"codigo_interno"`
	RFID          string `json:"rfid"`
	Localizacao   string `json:"localizacao"`
}

// UpdateItemRequest atualização parcial de item. O código interno é imutável
// e não aparece aqui de propósito.
type UpdateItemRequest struct {
	RFID        *string `json:"rfid"`
	Localizacao *string `json:"localizacao"`
	Ativo       *bool   `json:"ativo"`
}

// ItemResponse item do catálogo.
type ItemResponse struct {
	ID            string    `json:"id"`
	CodigoInterno string    `json:"codigo_interno"`
	ModeloID      string    `json:"modelo_id"`
	RFID          string    `json:"rfid,omitempty"`
	Localizacao   string    `json:"localizacao,omitempty"`
	Ativo         bool      `json:"ativo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateItemModelRequest cadastro de modelo de item.
type CreateItemModelRequest struct {
	Nome       string `json:"nome"`
	Descricao  string `json:"descricao"`
	Categoria  string `json:"categoria"`
	Fabricante string `json:"fabricante"`
}

// UpdateItemModelRequest atualização parcial de modelo.
type UpdateItemModelRequest struct {
	Descricao  *string `json:"descricao"`
	Categoria  *string `json:"categoria"`
	Fabricante *string `json:"fabricante"`
	Ativo      *bool   `json:"ativo"`
}

// ItemModelResponse modelo de item.
type ItemModelResponse struct {
	ID         string    `json:"id"`
	Nome       string    `json:"nome"`
	Descricao  string    `json:"descricao,omitempty"`
	Categoria  string    `json:"categoria"`
	Fabricante string    `json:"fabricante,omitempty"`
	Ativo      bool      `json:"ativo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
