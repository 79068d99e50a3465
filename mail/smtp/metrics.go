package smtp

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	// sendDuration is the duration of SendEmail calls, transport included.
	sendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omnimail_smtp_send_duration_seconds",
			Help:    "Duration of SMTP send attempts",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	sendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnimail_smtp_sends_total",
			Help: "Total number of SMTP send attempts",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(sendDuration)
	prometheus.MustRegister(sendsTotal)
}

func recordSend(status string, duration float64) {
	sendDuration.WithLabelValues(status).Observe(duration)
	sendsTotal.WithLabelValues(status).Inc()
}
