package entity

import "time"

// Categorias válidas para ItemModel.
const (
	CategoriaFerramenta = "ferramenta"
	CategoriaEPI        = "EPI"
	CategoriaOutros     = "outros"
)

// ItemModel agrupa itens de um mesmo modelo/categoria. O Nome é a base do
// prefixo dos códigos internos; renomear o modelo não renumera códigos já
// atribuídos.
type ItemModel struct {
	ID         string
	Nome       string // único
	Descricao  string
	Categoria  string // ferramenta, EPI, outros
	Fabricante string
	Ativo      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
