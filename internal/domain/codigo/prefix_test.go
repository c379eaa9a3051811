package codigo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/codigo"
)

func TestGerarPrefixo_NomeSimples(t *testing.T) {
	p, err := codigo.GerarPrefixo("Martelos")
	require.NoError(t, err)
	assert.Equal(t, "MART", p)
}

func TestGerarPrefixo_RemoveAcentosEEspacos(t *testing.T) {
	casos := map[string]string{
		"Pé de Cabra":    "PEDE",
		"Chave de Fenda": "CHAV",
		"Furadeira":      "FURA",
		"Trena":          "TREN",
	}
	for nome, esperado := range casos {
		p, err := codigo.GerarPrefixo(nome)
		require.NoError(t, err, "nome %q", nome)
		assert.Equal(t, esperado, p, "nome %q", nome)
	}
}

func TestGerarPrefixo_NomeCurto(t *testing.T) {
	p, err := codigo.GerarPrefixo("Pá")
	require.NoError(t, err)
	assert.Equal(t, "PA", p, "nomes com menos de 4 runas não são padded")
}

func TestGerarPrefixo_NomeVazio(t *testing.T) {
	_, err := codigo.GerarPrefixo("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormatarCodigo_ZeroPadded(t *testing.T) {
	assert.Equal(t, "MART-00001", codigo.FormatarCodigo("MART", 1))
	assert.Equal(t, "MART-00123", codigo.FormatarCodigo("MART", 123))
	assert.Equal(t, "PA-99999", codigo.FormatarCodigo("PA", 99999))
}
