package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotrade_signals_generated_total",
			Help: "Total number of signals produced (by strategy).",
		},
		[]string{"strategy"},
	)

	OrdersExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotrade_orders_executed_total",
			Help: "Total number of orders sent to the execution venue (by status).",
		},
		[]string{"status"},
	)

	RiskRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gotrade_risk_rejections_total",
			Help: "Signals denied by the risk gate.",
		},
	)

	RunningPnL = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gotrade_running_pnl",
			Help: "Accumulated realized PnL since the last daily reset.",
		},
	)

	TradingHalted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gotrade_trading_halted",
			Help: "1 when the risk gate has halted trading, 0 otherwise.",
		},
	)
)

func init() {
	prometheus.MustRegister(SignalsGenerated, OrdersExecuted, RiskRejections, RunningPnL, TradingHalted)
}
