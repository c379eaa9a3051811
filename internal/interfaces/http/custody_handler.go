package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

// CustodyHandler trata o registro e a consulta de transações de custódia
// (protegido).
type CustodyHandler struct {
	recordUC *custody.RecordTransactionUseCase
	statusUC *custody.StatusUseCase
}

// NewCustodyHandler constrói o handler.
func NewCustodyHandler(recordUC *custody.RecordTransactionUseCase, statusUC *custody.StatusUseCase) *CustodyHandler {
	return &CustodyHandler{recordUC: recordUC, statusUC: statusUC}
}

// Create godoc
// @Summary      Registrar retirada ou devolução
// @Description  usuario_id omitido = usuário autenticado do token
// @Tags         transacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Evento de custódia"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transacoes [post]
func (h *CustodyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	usuarioID := in.UsuarioID
	if usuarioID == "" {
		usuarioID = GetUserID(c)
	}
	tx, err := h.recordUC.Record(c.Context(), custody.TransactionInputDTO{
		UsuarioID:   usuarioID,
		ItemID:      in.ItemID,
		Tipo:        in.Tipo,
		Observacoes: in.Observacoes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// List godoc
// @Summary      Listar transações
// @Tags         transacoes
// @Security     Bearer
// @Produce      json
// @Param        usuario_id   query  string  false  "Filtrar por usuário"
// @Param        item_id      query  string  false  "Filtrar por item"
// @Param        tipo         query  string  false  "retirada | devolucao"
// @Param        data_inicio  query  string  false  "RFC3339"
// @Param        data_fim     query  string  false  "RFC3339"
// @Param        limit        query  int     false  "Limite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transacoes [get]
func (h *CustodyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	filter := repository.TransactionFilter{
		UsuarioID: c.Query("usuario_id"),
		ItemID:    c.Query("item_id"),
		Tipo:      c.Query("tipo"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if v := c.Query("data_inicio"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_inicio inválida (RFC3339)"})
		}
		filter.DataInicio = &t
	}
	if v := c.Query("data_fim"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_fim inválida (RFC3339)"})
		}
		filter.DataFim = &t
	}
	list, err := h.statusUC.ListTransactions(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(list))
}

// Emprestados godoc
// @Summary      Itens emprestados agora (última movimentação = retirada)
// @Tags         transacoes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transacoes/emprestados [get]
func (h *CustodyHandler) Emprestados(c *fiber.Ctx) error {
	list, err := h.statusUC.GetAllBorrowedItems(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(list))
}
