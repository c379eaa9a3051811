package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
)

// UserHandler trata as requisições de usuários (protegido; criação e
// remoção restritas a admin via RequireRole no router).
type UserHandler struct {
	uc       *usecase.UserUseCase
	statusUC *custody.StatusUseCase
}

// NewUserHandler constrói o handler.
func NewUserHandler(uc *usecase.UserUseCase, statusUC *custody.StatusUseCase) *UserHandler {
	return &UserHandler{uc: uc, statusUC: statusUC}
}

// Create godoc
// @Summary      Cadastrar usuário
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Dados do usuário"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	user, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// List godoc
// @Summary      Listar usuários
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        ativo   query  bool  false  "Filtrar por ativo"
// @Param        limit   query  int   false  "Limite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200  {array}  dto.UserResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	var ativo *bool
	if c.Query("ativo") != "" {
		b := c.QueryBool("ativo")
		ativo = &b
	}
	users, err := h.uc.List(c.Context(), ativo, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter usuário por ID
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do usuário"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// Update godoc
// @Summary      Atualizar usuário
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do usuário"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	user, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// Delete godoc
// @Summary      Remover usuário
// @Tags         usuarios
// @Security     Bearer
// @Param        id  path  string  true  "ID do usuário"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AttachRFID godoc
// @Summary      Vincular tag RFID ao usuário
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do usuário"
// @Param        body  body  dto.AttachRFIDRequest  true  "Tag RFID"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/rfid [post]
func (h *UserHandler) AttachRFID(c *fiber.Ctx) error {
	var in dto.AttachRFIDRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	user, err := h.uc.AttachRFID(c.Context(), c.Params("id"), in.RFID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// DetachRFID godoc
// @Summary      Desvincular tag RFID do usuário
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do usuário"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/rfid [delete]
func (h *UserHandler) DetachRFID(c *fiber.Ctx) error {
	user, err := h.uc.DetachRFID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// Historico godoc
// @Summary      Histórico de transações do usuário
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID do usuário"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/usuarios/{id}/historico [get]
func (h *UserHandler) Historico(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.statusUC.GetUserHistory(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(list))
}

// Stats godoc
// @Summary      Estatísticas de custódia do usuário
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do usuário"
// @Success      200  {object}  dto.UserStatsResponse
// @Router       /api/usuarios/{id}/stats [get]
func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statusUC.GetUserStats(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserStatsResponse{
		TotalRetiradas:  stats.TotalRetiradas,
		TotalDevolucoes: stats.TotalDevolucoes,
		ItensAtivos:     stats.ItensAtivos,
	})
}
