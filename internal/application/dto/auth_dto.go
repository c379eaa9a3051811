package dto

// LoginRequest credenciais de login (CPF + senha).
type LoginRequest struct {
	CPF   string `json:"cpf"`
	Senha string `json:"senha"`
}

// LoginResponse token JWT + dados do usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
