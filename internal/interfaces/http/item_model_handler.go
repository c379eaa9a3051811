package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
)

// ItemModelHandler trata as requisições de modelos de item (protegido).
type ItemModelHandler struct {
	uc *usecase.ItemModelUseCase
}

// NewItemModelHandler constrói o handler.
func NewItemModelHandler(uc *usecase.ItemModelUseCase) *ItemModelHandler {
	return &ItemModelHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar modelo de item
// @Tags         modelos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemModelRequest  true  "Dados do modelo"
// @Success      201   {object}  dto.ItemModelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/modelos [post]
func (h *ItemModelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemModelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	modelo, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemModelResponse(modelo))
}

// List godoc
// @Summary      Listar modelos
// @Tags         modelos
// @Security     Bearer
// @Produce      json
// @Param        categoria  query  string  false  "ferramenta | epi | outros"
// @Param        ativo      query  bool    false  "Filtrar por ativo"
// @Param        limit      query  int     false  "Limite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ItemModelResponse
// @Router       /api/modelos [get]
func (h *ItemModelHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	var ativo *bool
	if c.Query("ativo") != "" {
		b := c.QueryBool("ativo")
		ativo = &b
	}
	modelos, err := h.uc.List(c.Context(), c.Query("categoria"), ativo, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemModelResponse, 0, len(modelos))
	for _, m := range modelos {
		out = append(out, toItemModelResponse(m))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter modelo por ID
// @Tags         modelos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do modelo"
// @Success      200  {object}  dto.ItemModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modelos/{id} [get]
func (h *ItemModelHandler) GetByID(c *fiber.Ctx) error {
	modelo, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemModelResponse(modelo))
}

// Update godoc
// @Summary      Atualizar modelo
// @Tags         modelos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do modelo"
// @Param        body  body  dto.UpdateItemModelRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.ItemModelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/modelos/{id} [put]
func (h *ItemModelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemModelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	modelo, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemModelResponse(modelo))
}

// Delete godoc
// @Summary      Remover modelo
// @Tags         modelos
// @Security     Bearer
// @Param        id  path  string  true  "ID do modelo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modelos/{id} [delete]
func (h *ItemModelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
