package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler returns the scrape endpoint for the default Prometheus
// registry, bridged into Fiber through the net/http adaptor. Collectors
// are registered up front so an idle, never-scraped service still
// exposes them with zero values.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()

	scrape := promhttp.Handler()
	return adaptor.HTTPHandler(scrape)
}
