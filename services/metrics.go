package services

import "github.com/prometheus/client_golang/prometheus"

var (
	checkInsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_check_ins_total",
			Help: "Total number of successful member check-ins",
		},
	)
	salesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_sales_total",
			Help: "Total number of completed sale transactions",
		},
	)
)

// InitMetrics registers the domain metrics. Call this from main.go
func InitMetrics() {
	prometheus.MustRegister(checkInsTotal)
	prometheus.MustRegister(salesTotal)
}
