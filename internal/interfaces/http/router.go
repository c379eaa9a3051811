package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferramentaria/ferramentaria-api/internal/application/auth"
	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ItemModelUC *usecase.ItemModelUseCase
	ItemUC      *usecase.ItemUseCase
	RfidUC      *usecase.RfidUseCase
	RecordUC    *custody.RecordTransactionUseCase
	StatusUC    *custody.StatusUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Usuários (protegido; criação, remoção e role restritos a admin)
	usuarios := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC, deps.StatusUC)
	usuarios.Post("/", adminOnly, userHandler.Create)
	usuarios.Get("/", userHandler.List)
	usuarios.Get("/:id", userHandler.GetByID)
	usuarios.Put("/:id", adminOnly, userHandler.Update)
	usuarios.Delete("/:id", adminOnly, userHandler.Delete)
	usuarios.Post("/:id/rfid", adminOnly, userHandler.AttachRFID)
	usuarios.Delete("/:id/rfid", adminOnly, userHandler.DetachRFID)
	usuarios.Get("/:id/historico", userHandler.Historico)
	usuarios.Get("/:id/stats", userHandler.Stats)

	// Modelos de item (protegido; escrita restrita a admin)
	modelos := protected.Group("/modelos")
	modelHandler := NewItemModelHandler(deps.ItemModelUC)
	modelos.Post("/", adminOnly, modelHandler.Create)
	modelos.Get("/", modelHandler.List)
	modelos.Get("/:id", modelHandler.GetByID)
	modelos.Put("/:id", adminOnly, modelHandler.Update)
	modelos.Delete("/:id", adminOnly, modelHandler.Delete)

	// Itens (protegido; escrita restrita a admin)
	itens := protected.Group("/itens")
	itemHandler := NewItemHandler(deps.ItemUC, deps.StatusUC)
	itens.Post("/", adminOnly, itemHandler.Create)
	itens.Get("/", itemHandler.List)
	itens.Get("/codigo/:codigo", itemHandler.GetByCodigo)
	itens.Get("/rfid/:rfid", itemHandler.GetByRFID)
	itens.Get("/:id", itemHandler.GetByID)
	itens.Get("/:id/status", itemHandler.Status)
	itens.Get("/:id/responsavel", itemHandler.Responsavel)
	itens.Get("/:id/historico", itemHandler.Historico)
	itens.Put("/:id", adminOnly, itemHandler.Update)
	itens.Delete("/:id", adminOnly, itemHandler.Delete)

	// Transações de custódia (protegido; qualquer role autenticado registra)
	transacoes := protected.Group("/transacoes")
	custodyHandler := NewCustodyHandler(deps.RecordUC, deps.StatusUC)
	transacoes.Post("/", custodyHandler.Create)
	transacoes.Get("/", custodyHandler.List)
	transacoes.Get("/emprestados", custodyHandler.Emprestados)

	// RFID (protegido)
	rfid := protected.Group("/rfid")
	rfidHandler := NewRfidHandler(deps.RfidUC)
	rfid.Post("/leituras", rfidHandler.RegistrarLeitura)
	rfid.Get("/pendentes", rfidHandler.ListPendentes)
}
