package custody

import (
	"context"
	"time"

	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	domaincustody "github.com/ferramentaria/ferramentaria-api/internal/domain/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
	"github.com/ferramentaria/ferramentaria-api/pkg/logger"
)

// StatusUseCase responde consultas de estado e histórico reduzindo o ledger.
// Todas as operações são somente leitura; nada aqui muta o ledger.
type StatusUseCase struct {
	txRepo   repository.TransactionRepository
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewStatusUseCase constrói o agregador de status.
func NewStatusUseCase(txRepo repository.TransactionRepository, itemRepo repository.ItemRepository, log *logger.Logger) *StatusUseCase {
	return &StatusUseCase{txRepo: txRepo, itemRepo: itemRepo, log: log}
}

// ItemStatusDTO estado derivado de um item.
type ItemStatusDTO struct {
	Disponivel      bool
	UltimaTransacao *entity.Transaction
}

// CurrentHolderDTO quem está com o item e desde quando. Usuario nil = ninguém.
type CurrentHolderDTO struct {
	Usuario *entity.UsuarioSnapshot
	Desde   *time.Time
}

// UserStatsDTO estatísticas de custódia de um usuário.
type UserStatsDTO struct {
	TotalRetiradas  int
	TotalDevolucoes int
	ItensAtivos     int
}

// LatestByItem retorna o evento mais recente do item (nil se nunca
// movimentado). Desempate por ordem de inserção; um empate de timestamp
// indica problema de relógio ou de dados e gera warning no log.
func (uc *StatusUseCase) LatestByItem(ctx context.Context, itemID string) (*entity.Transaction, error) {
	ultimas, err := uc.txRepo.ListByItem(ctx, itemID, 2, 0)
	if err != nil {
		return nil, err
	}
	if len(ultimas) == 0 {
		return nil, nil
	}
	if len(ultimas) == 2 && ultimas[0].Timestamp.Equal(ultimas[1].Timestamp) {
		uc.log.Warn().
			Str("item_id", itemID).
			Time("timestamp", ultimas[0].Timestamp).
			Msg("empate de timestamp no ledger; desempate por ordem de inserção")
	}
	return ultimas[0], nil
}

// GetItemStatus informa se o item está disponível ou emprestado.
func (uc *StatusUseCase) GetItemStatus(ctx context.Context, itemID string) (*ItemStatusDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	ultima, err := uc.LatestByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemStatusDTO{
		Disponivel:      domaincustody.Disponivel(ultima),
		UltimaTransacao: ultima,
	}, nil
}

// GetCurrentHolder retorna o usuário que está com o item (snapshot do evento
// de retirada) e desde quando. Usuario nil se o item está disponível.
func (uc *StatusUseCase) GetCurrentHolder(ctx context.Context, itemID string) (*CurrentHolderDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	ultima, err := uc.LatestByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if domaincustody.Disponivel(ultima) {
		return &CurrentHolderDTO{}, nil
	}
	usuario := ultima.Usuario
	desde := ultima.Timestamp
	return &CurrentHolderDTO{Usuario: &usuario, Desde: &desde}, nil
}

// GetAllBorrowedItems retorna o último evento de cada item cuja última
// movimentação foi uma retirada. Reduz o ledger inteiro a cada chamada
// (latest-per-item + filtro), sem view materializada.
func (uc *StatusUseCase) GetAllBorrowedItems(ctx context.Context) ([]*entity.Transaction, error) {
	ultimos, err := uc.txRepo.LatestPerItem(ctx)
	if err != nil {
		return nil, err
	}
	emprestados := make([]*entity.Transaction, 0, len(ultimos))
	for _, t := range ultimos {
		if t.Tipo == entity.TransactionTypeRetirada {
			emprestados = append(emprestados, t)
		}
	}
	return emprestados, nil
}

// GetUserHistory retorna o histórico de transações de um usuário, da mais
// recente para a mais antiga.
func (uc *StatusUseCase) GetUserHistory(ctx context.Context, usuarioID string, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByUsuario(ctx, usuarioID, limit, offset)
}

// GetUserStats retorna contagens de retiradas e devoluções do usuário, mais
// quantos itens ele tem em mãos agora (cross-reference de GetAllBorrowedItems).
func (uc *StatusUseCase) GetUserStats(ctx context.Context, usuarioID string) (*UserStatsDTO, error) {
	retiradas, err := uc.txRepo.CountByUsuarioAndTipo(ctx, usuarioID, entity.TransactionTypeRetirada)
	if err != nil {
		return nil, err
	}
	devolucoes, err := uc.txRepo.CountByUsuarioAndTipo(ctx, usuarioID, entity.TransactionTypeDevolucao)
	if err != nil {
		return nil, err
	}
	emprestados, err := uc.GetAllBorrowedItems(ctx)
	if err != nil {
		return nil, err
	}
	ativos := 0
	for _, t := range emprestados {
		if t.Usuario.ID == usuarioID {
			ativos++
		}
	}
	return &UserStatsDTO{
		TotalRetiradas:  retiradas,
		TotalDevolucoes: devolucoes,
		ItensAtivos:     ativos,
	}, nil
}

// ListTransactions lista transações com filtros opcionais.
func (uc *StatusUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	return uc.txRepo.List(ctx, filter)
}
