package aasahttp

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aasa",
			Name:      "association_requests_total",
			Help:      "Number of apple-app-site-association responses by status code.",
		},
		[]string{"code"},
	)

	if err := reg.Register(requests); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			panic(err)
		}

		requests = are.ExistingCollector.(*prometheus.CounterVec)
	}

	return &metrics{requests: requests}
}

func (m *metrics) observe(httpStatusCode int) {
	m.requests.WithLabelValues(strconv.Itoa(httpStatusCode)).Inc()
}
