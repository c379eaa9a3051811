// Package metrics expõe os contadores Prometheus da aplicação.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransacoesRegistradas conta eventos de custódia gravados no ledger,
	// por tipo (retirada, devolucao).
	TransacoesRegistradas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ferramentaria_transacoes_total",
		Help: "Total de transações de custódia registradas, por tipo.",
	}, []string{"tipo"})

	// ConflitosCustodia conta tentativas rejeitadas por transição ilegal
	// (dupla retirada, devolução sem retirada).
	ConflitosCustodia = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ferramentaria_conflitos_custodia_total",
		Help: "Total de transações rejeitadas por conflito de estado.",
	})

	// ItensRegistrados conta itens criados com código interno gerado.
	ItensRegistrados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ferramentaria_itens_registrados_total",
		Help: "Total de itens registrados no catálogo.",
	})
)
