package dto

import "time"

// CreateUserRequest cadastro de usuário (apenas admin).
type CreateUserRequest struct {
	Nome  string `json:"nome"`
	CPF   string `json:"cpf"`
	Senha string `json:"senha"`
	Role  string `json:"role"`
	RFID  string `json:"rfid"`
}

// UpdateUserRequest atualização parcial de usuário.
type UpdateUserRequest struct {
	Nome  *string `json:"nome"`
	Senha *string `json:"senha"`
	Role  *string `json:"role"`
	Ativo *bool   `json:"ativo"`
}

// AttachRFIDRequest vincula uma tag RFID a um usuário.
type AttachRFIDRequest struct {
	RFID string `json:"rfid"`
}

// UserResponse usuário sem campos sensíveis (nunca expõe o hash da senha).
type UserResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CPF       string    `json:"cpf"`
	RFID      string    `json:"rfid,omitempty"`
	Role      string    `json:"role"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStatsResponse estatísticas de custódia de um usuário.
type UserStatsResponse struct {
	TotalRetiradas  int `json:"total_retiradas"`
	TotalDevolucoes int `json:"total_devolucoes"`
	ItensAtivos     int `json:"itens_ativos"`
}
