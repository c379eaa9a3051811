package entity

import "time"

// Papéis válidos para User.
const (
	RoleFuncionario = "funcionario"
	RoleAdmin       = "admin"
)

// User representa um funcionário que pode ter custódia de itens.
type User struct {
	ID        string
	Nome      string
	CPF       string // único
	RFID      string // opcional; único quando presente
	SenhaHash string // bcrypt, nunca plano depois de persistido
	Role      string // funcionario, admin
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
