package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferramentaria/ferramentaria-api/internal/application/dto"
	"github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
)

// RfidHandler trata leituras de sensores RFID e a fila de tags pendentes.
type RfidHandler struct {
	uc *usecase.RfidUseCase
}

// NewRfidHandler constrói o handler.
func NewRfidHandler(uc *usecase.RfidUseCase) *RfidHandler {
	return &RfidHandler{uc: uc}
}

// RegistrarLeitura godoc
// @Summary      Registrar leitura de sensor RFID
// @Description  A tag resolve para um item ou usuário conhecido, ou entra na fila de pendentes.
// @Tags         rfid
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RfidLeituraRequest  true  "Leitura"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rfid/leituras [post]
func (h *RfidHandler) RegistrarLeitura(c *fiber.Ctx) error {
	var in dto.RfidLeituraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	result, err := h.uc.RegistrarLeitura(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	switch {
	case result.Item != nil:
		return c.JSON(fiber.Map{"tipo": "item", "item": toItemResponse(result.Item)})
	case result.Usuario != nil:
		return c.JSON(fiber.Map{"tipo": "usuario", "usuario": toUserResponse(result.Usuario)})
	default:
		return c.JSON(fiber.Map{"tipo": "pendente", "pendente": toRfidPendingResponse(result.Pendente)})
	}
}

// ListPendentes godoc
// @Summary      Listar tags RFID aguardando vínculo
// @Tags         rfid
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.RfidPendingResponse
// @Router       /api/rfid/pendentes [get]
func (h *RfidHandler) ListPendentes(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.uc.ListPendentes(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RfidPendingResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toRfidPendingResponse(p))
	}
	return c.JSON(out)
}
