package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var txTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Contract write transactions by method and outcome",
	},
	[]string{"method", "outcome"},
)
