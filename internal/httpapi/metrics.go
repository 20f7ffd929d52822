package httpapi

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registryHandlerOnce sync.Once
	registryHTTPHandler http.Handler
)

// registryHandler lazily builds the /metrics HTTP handler backed by the
// default Prometheus registry the otel exporter and telemetry package
// both register into.
func registryHandler() http.Handler {
	registryHandlerOnce.Do(func() {
		registryHTTPHandler = promhttp.Handler()
	})
	return registryHTTPHandler
}
