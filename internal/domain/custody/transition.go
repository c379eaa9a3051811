// Package custody contém a máquina de estados de custódia (serviço de
// domínio puro). O estado de um item é sempre derivado do último evento:
// disponível se o último evento é devolução (ou não há evento); em uso se é
// retirada.
package custody

import (
	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
)

// TipoValido informa se o tipo de transação é suportado.
func TipoValido(tipo string) bool {
	return tipo == entity.TransactionTypeRetirada || tipo == entity.TransactionTypeDevolucao
}

// ValidateTransition valida a transição pedida contra o último evento do
// item (nil = item nunca movimentado).
//
//	disponível --retirada--> em uso
//	em uso     --devolucao--> disponível (qualquer usuário pode devolver)
//	em uso     --retirada--> ErrItemEmUso (dupla retirada)
//	disponível --devolucao--> erro (nunca retirado ou já devolvido)
func ValidateTransition(ultima *entity.Transaction, tipo string) error {
	if !TipoValido(tipo) {
		return domain.ErrInvalidInput
	}
	switch tipo {
	case entity.TransactionTypeRetirada:
		if ultima != nil && ultima.Tipo == entity.TransactionTypeRetirada {
			return domain.ErrItemEmUso
		}
	case entity.TransactionTypeDevolucao:
		if ultima == nil {
			// não faz sentido devolver sem ter sido retirado antes
			return domain.ErrInvalidInput
		}
		if ultima.Tipo == entity.TransactionTypeDevolucao {
			return domain.ErrConflict
		}
	}
	return nil
}

// Disponivel informa se o item está disponível dado o último evento.
func Disponivel(ultima *entity.Transaction) bool {
	return ultima == nil || ultima.Tipo == entity.TransactionTypeDevolucao
}
