package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/codigo"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
	"github.com/ferramentaria/ferramentaria-api/pkg/metrics"
)

// ItemUseCase casos de uso do catálogo de itens, incluindo a geração do
// código interno no cadastro.
type ItemUseCase struct {
	txRunner   CodigoTxRunner
	itemRepo   repository.ItemRepository
	modeloRepo repository.ItemModelRepository
	rfidRepo   repository.RfidPendingRepository
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(
	txRunner CodigoTxRunner,
	itemRepo repository.ItemRepository,
	modeloRepo repository.ItemModelRepository,
	rfidRepo repository.RfidPendingRepository,
) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, modeloRepo: modeloRepo, rfidRepo: rfidRepo}
}

// Register cadastra um item. Sem código interno explícito, gera um:
// prefixo derivado do nome do modelo + sufixo sequencial de 5 dígitos,
// partindo do maior código existente do prefixo. A busca do máximo e o
// insert acontecem na mesma transação serializada por prefixo; não há
// tabela de contador — a fonte da verdade é o próprio catálogo.
func (uc *ItemUseCase) Register(ctx context.Context, in dto.RegisterItemRequest) (*entity.Item, error) {
	if in.ModeloID == "" {
		return nil, domain.ErrInvalidInput
	}
	modelo, err := uc.modeloRepo.GetByID(ctx, in.ModeloID)
	if err != nil {
		return nil, err
	}
	if modelo == nil {
		return nil, domain.ErrNotFound
	}

	prefixo, err := codigo.GerarPrefixo(modelo.Nome)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		ModeloID:    modelo.ID,
		RFID:        strings.TrimSpace(in.RFID),
		Localizacao: in.Localizacao,
		Ativo:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunCodigo(ctx, prefixo, func(itemRepo repository.ItemRepository) error {
		if in.CodigoInterno != "" {
			// código explícito: aceito se inédito
			existente, err := itemRepo.GetByCodigoInterno(ctx, in.CodigoInterno)
			if err != nil {
				return err
			}
			if existente != nil {
				return domain.ErrDuplicate
			}
			item.CodigoInterno = in.CodigoInterno
		} else {
			proximo, err := proximoNumero(ctx, itemRepo, prefixo)
			if err != nil {
				return err
			}
			item.CodigoInterno = codigo.FormatarCodigo(prefixo, proximo)
		}
		return itemRepo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	// tag que estava na fila de pendentes passa a "usado"
	if item.RFID != "" {
		_ = uc.rfidRepo.UpdateStatus(ctx, item.RFID, entity.RfidPendingUsado)
	}

	metrics.ItensRegistrados.Inc()
	return item, nil
}

// proximoNumero lê o maior código existente do prefixo e devolve o sufixo
// seguinte (1 se não há nenhum). Código existente que não casa com
// ^prefixo-\d+$ é sinal de corrupção de dados e falha de forma explícita,
// nunca é pulado em silêncio.
func proximoNumero(ctx context.Context, itemRepo repository.ItemRepository, prefixo string) (int, error) {
	max, err := itemRepo.MaxCodigoInterno(ctx, prefixo)
	if err != nil {
		return 0, err
	}
	if max == "" {
		return 1, nil
	}
	padrao := regexp.MustCompile("^" + regexp.QuoteMeta(prefixo) + `-\d+$`)
	if !padrao.MatchString(max) {
		return 0, domain.ErrCodigoCorrompido
	}
	sufixo := strings.TrimPrefix(max, prefixo+"-")
	n, err := strconv.Atoi(sufixo)
	if err != nil {
		return 0, domain.ErrCodigoCorrompido
	}
	return n + 1, nil
}

// GetByID obtém um item por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetByCodigoInterno obtém um item pelo código interno.
func (uc *ItemUseCase) GetByCodigoInterno(ctx context.Context, cod string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByCodigoInterno(ctx, cod)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetByRFID obtém um item pela tag RFID.
func (uc *ItemUseCase) GetByRFID(ctx context.Context, rfid string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista itens com filtros opcionais.
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	return uc.itemRepo.List(ctx, filter)
}

// Update atualiza campos mutáveis do item (RFID, localização, ativo).
// O código interno nunca é reatribuído.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.RFID != nil && *in.RFID != item.RFID {
		if *in.RFID != "" {
			existente, err := uc.itemRepo.GetByRFID(ctx, *in.RFID)
			if err != nil {
				return nil, err
			}
			if existente != nil && existente.ID != item.ID {
				return nil, domain.ErrDuplicate
			}
		}
		item.RFID = *in.RFID
	}
	if in.Localizacao != nil {
		item.Localizacao = *in.Localizacao
	}
	if in.Ativo != nil {
		item.Ativo = *in.Ativo
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete remove um item do catálogo. O histórico do ledger permanece.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(ctx, id)
}
