package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

// UserUseCase CRUD de usuários e vínculo de RFID.
type UserUseCase struct {
	userRepo repository.UserRepository
	rfidRepo repository.RfidPendingRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, rfidRepo repository.RfidPendingRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, rfidRepo: rfidRepo}
}

func roleValida(r string) bool {
	return r == entity.RoleFuncionario || r == entity.RoleAdmin
}

// Create cadastra um usuário: hasheia a senha com bcrypt e persiste.
// CPF duplicado retorna ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	nome := strings.TrimSpace(in.Nome)
	cpf := strings.TrimSpace(in.CPF)
	if nome == "" || cpf == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleFuncionario
	}
	if !roleValida(role) {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.userRepo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Nome:      nome,
		CPF:       cpf,
		RFID:      strings.TrimSpace(in.RFID),
		SenhaHash: string(hash),
		Role:      role,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if user.RFID != "" {
		_ = uc.rfidRepo.UpdateStatus(ctx, user.RFID, entity.RfidPendingUsado)
	}
	return user, nil
}

// GetByID obtém um usuário por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	return user, nil
}

// List lista usuários.
func (uc *UserUseCase) List(ctx context.Context, ativo *bool, limit, offset int) ([]*entity.User, error) {
	return uc.userRepo.List(ctx, ativo, limit, offset)
}

// Update atualização parcial (nome, senha, role, ativo).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if in.Nome != nil && strings.TrimSpace(*in.Nome) != "" {
		user.Nome = strings.TrimSpace(*in.Nome)
	}
	if in.Senha != nil && *in.Senha != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Senha), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.SenhaHash = string(hash)
	}
	if in.Role != nil {
		if !roleValida(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Ativo != nil {
		user.Ativo = *in.Ativo
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AttachRFID vincula uma tag RFID ao usuário. Tag já em uso por outro
// usuário retorna ErrDuplicate.
func (uc *UserUseCase) AttachRFID(ctx context.Context, id, rfid string) (*entity.User, error) {
	rfid = strings.TrimSpace(rfid)
	if rfid == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	existente, err := uc.userRepo.GetByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if existente != nil && existente.ID != user.ID {
		return nil, domain.ErrDuplicate
	}
	user.RFID = rfid
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = uc.rfidRepo.UpdateStatus(ctx, rfid, entity.RfidPendingUsado)
	return user, nil
}

// DetachRFID remove a tag RFID do usuário.
func (uc *UserUseCase) DetachRFID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	user.RFID = ""
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete remove um usuário. O histórico no ledger permanece intacto:
// os eventos guardam snapshot, não referência.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUsuarioNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}
