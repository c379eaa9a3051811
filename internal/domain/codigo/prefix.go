// Package codigo contém a lógica de geração de códigos internos de itens
// (serviço de domínio, sem persistência).
package codigo

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PrefixoLen é o tamanho máximo do prefixo derivado do nome do modelo.
const PrefixoLen = 4

var removerAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// GerarPrefixo deriva o prefixo do código interno a partir do nome do modelo:
// remove acentos, remove espaços, maiúsculas, trunca em 4 runas.
// Ex.: "Martelos" -> "MART", "Pé de Cabra" -> "PEDE".
func GerarPrefixo(nome string) (string, error) {
	s, _, err := transform.String(removerAcentos, nome)
	if err != nil {
		return "", fmt.Errorf("normalizar nome %q: %w", nome, err)
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return "", domain.ErrInvalidInput
	}
	r := []rune(strings.ToUpper(s))
	if len(r) > PrefixoLen {
		r = r[:PrefixoLen]
	}
	return string(r), nil
}

// FormatarCodigo monta o código interno com o sufixo numérico zero-padded.
// Ex.: ("MART", 1) -> "MART-00001".
func FormatarCodigo(prefixo string, numero int) string {
	return fmt.Sprintf("%s-%05d", prefixo, numero)
}
