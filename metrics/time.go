package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CheckTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "novaguard_check_time_seconds",
	Help: "The time spent in each check, including judge retries",
}, []string{"check", "kind"})

func StartCheckTimer(check Check, kind Kind) *prometheus.Timer {
	return prometheus.NewTimer(CheckTime.With(prometheus.Labels{
		"check": string(check),
		"kind":  string(kind),
	}))
}
