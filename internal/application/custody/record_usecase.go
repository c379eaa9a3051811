package custody

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	domaincustody "github.com/ferramentaria/ferramentaria-api/internal/domain/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
	"github.com/ferramentaria/ferramentaria-api/pkg/logger"
	"github.com/ferramentaria/ferramentaria-api/pkg/metrics"
)

// RecordTransactionUseCase registra retiradas e devoluções no ledger de
// custódia. A validação da transição e o append acontecem dentro da mesma
// transação serializada por item, para que duas retiradas concorrentes do
// mesmo item nunca sejam ambas aceitas.
type RecordTransactionUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewRecordTransactionUseCase constrói o caso de uso.
func NewRecordTransactionUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{txRunner: txRunner, itemRepo: itemRepo, userRepo: userRepo, log: log}
}

// TransactionInputDTO entrada para registrar um evento de custódia.
type TransactionInputDTO struct {
	UsuarioID   string
	ItemID      string
	Tipo        string // retirada | devolucao
	Observacoes string
}

// Record valida e grava um evento de custódia.
//
// Procedimento: resolve usuário e item; abre transação com lock por item;
// lê o último evento dentro do lock; valida a transição; faz exatamente um
// append com snapshot do usuário tirado no momento da chamada. Em falha,
// nada é gravado. O caso de uso nunca faz retry: quem perde a corrida
// recebe o erro de conflito e decide o que fazer.
func (uc *RecordTransactionUseCase) Record(ctx context.Context, in TransactionInputDTO) (*entity.Transaction, error) {
	if !domaincustody.TipoValido(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	if in.UsuarioID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByID(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUsuarioNotFound
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.Transaction
	err = uc.txRunner.RunTransacao(ctx, item.ID, func(txRepo repository.TransactionRepository) error {
		ultimas, err := txRepo.ListByItem(ctx, item.ID, 1, 0)
		if err != nil {
			return err
		}
		var ultima *entity.Transaction
		if len(ultimas) > 0 {
			ultima = ultimas[0]
		}
		if err := domaincustody.ValidateTransition(ultima, in.Tipo); err != nil {
			if errors.Is(err, domain.ErrItemEmUso) || errors.Is(err, domain.ErrConflict) {
				metrics.ConflitosCustodia.Inc()
			}
			return err
		}

		now := time.Now()
		tx := &entity.Transaction{
			ID:     uuid.New().String(),
			ItemID: item.ID,
			Usuario: entity.UsuarioSnapshot{
				ID:   user.ID,
				Nome: user.Nome,
				CPF:  user.CPF,
			},
			Tipo:        in.Tipo,
			Timestamp:   now,
			Observacoes: in.Observacoes,
			CreatedAt:   now,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransacoesRegistradas.WithLabelValues(in.Tipo).Inc()
	uc.log.Info().
		Str("item_id", created.ItemID).
		Str("usuario_id", created.Usuario.ID).
		Str("tipo", created.Tipo).
		Msg("transação de custódia registrada")
	return created, nil
}
