package httpd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradebook",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and path.",
	}, []string{"method", "path"})

	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradebook",
		Subsystem: "search",
		Name:      "queries_total",
		Help:      "Tag search queries by validity.",
	}, []string{"valid"})
)

func metricsHandler() http.Handler { return promhttp.Handler() }

func instrumentRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsTotal.WithLabelValues(r.Method, r.URL.Path).Inc()
		next.ServeHTTP(w, r)
	})
}

func observeSearch(valid bool) {
	if valid {
		searchesTotal.WithLabelValues("true").Inc()
		return
	}
	searchesTotal.WithLabelValues("false").Inc()
}
