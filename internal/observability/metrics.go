package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total de requisições de chat recebidas",
		},
	)
	ChatFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_failures_total",
			Help: "Total de requisições de chat com falha fatal (chave ou IA)",
		},
	)
	ActionPlansTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "action_plans_total",
			Help: "Total de planos de ação gerados",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(ChatRequestsTotal, ChatFailuresTotal, ActionPlansTotal)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, mux)
}
