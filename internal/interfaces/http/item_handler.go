package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
)

// ItemHandler trata as requisições do catálogo de itens (protegido).
type ItemHandler struct {
	uc       *usecase.ItemUseCase
	statusUC *custody.StatusUseCase
}

// NewItemHandler constrói o handler.
func NewItemHandler(uc *usecase.ItemUseCase, statusUC *custody.StatusUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, statusUC: statusUC}
}

// Create godoc
// @Summary      Cadastrar item (código interno gerado se omitido)
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterItemRequest  true  "Dados do item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// List godoc
// @Summary      Listar itens
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        modelo_id  query  string  false  "Filtrar por modelo"
// @Param        ativo      query  bool    false  "Filtrar por ativo"
// @Param        limit      query  int     false  "Limite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/itens [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	filter := repository.ItemFilter{
		ModeloID: c.Query("modelo_id"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if c.Query("ativo") != "" {
		b := c.QueryBool("ativo")
		filter.Ativo = &b
	}
	itens, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(itens))
	for _, i := range itens {
		out = append(out, toItemResponse(i))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter item por ID
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// GetByCodigo godoc
// @Summary      Obter item pelo código interno
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "Código interno (ex.: MART-00001)"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/codigo/{codigo} [get]
func (h *ItemHandler) GetByCodigo(c *fiber.Ctx) error {
	item, err := h.uc.GetByCodigoInterno(c.Context(), c.Params("codigo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// GetByRFID godoc
// @Summary      Obter item pela tag RFID
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        rfid  path  string  true  "Tag RFID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/rfid/{rfid} [get]
func (h *ItemHandler) GetByRFID(c *fiber.Ctx) error {
	item, err := h.uc.GetByRFID(c.Context(), c.Params("rfid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Status godoc
// @Summary      Estado de custódia do item (derivado do ledger)
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  dto.ItemStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id}/status [get]
func (h *ItemHandler) Status(c *fiber.Ctx) error {
	status, err := h.statusUC.GetItemStatus(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ItemStatusResponse{Disponivel: status.Disponivel}
	if status.UltimaTransacao != nil {
		t := toTransactionResponse(status.UltimaTransacao)
		out.UltimaTransacao = &t
	}
	return c.JSON(out)
}

// Responsavel godoc
// @Summary      Quem está com o item agora (snapshot da retirada)
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  dto.CurrentHolderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id}/responsavel [get]
func (h *ItemHandler) Responsavel(c *fiber.Ctx) error {
	holder, err := h.statusUC.GetCurrentHolder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.CurrentHolderResponse{Desde: holder.Desde}
	if holder.Usuario != nil {
		out.Usuario = &dto.UsuarioSnapshotDTO{
			ID:   holder.Usuario.ID,
			Nome: holder.Usuario.Nome,
			CPF:  holder.Usuario.CPF,
		}
	}
	return c.JSON(out)
}

// Historico godoc
// @Summary      Histórico de transações do item
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID do item"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/itens/{id}/historico [get]
func (h *ItemHandler) Historico(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.statusUC.ListTransactions(c.Context(), repository.TransactionFilter{
		ItemID: c.Params("id"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(list))
}

// Update godoc
// @Summary      Atualizar item (código interno é imutável)
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Delete godoc
// @Summary      Remover item (o histórico do ledger permanece)
// @Tags         itens
// @Security     Bearer
// @Param        id  path  string  true  "ID do item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
