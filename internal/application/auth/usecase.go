package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
	"github.com/ferramentaria/ferramentaria-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticação: login por CPF e senha.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica CPF/senha, gera JWT e retorna token + usuário.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	cpf := strings.TrimSpace(in.CPF)
	if cpf == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Ativo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Nome, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Nome:      user.Nome,
			CPF:       user.CPF,
			RFID:      user.RFID,
			Role:      user.Role,
			Ativo:     user.Ativo,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}
