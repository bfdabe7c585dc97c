// Package gestorfacturas предоставляет маршруты для основного приложения.
package gestorfacturas

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Franklp24/gestor-facturas/internal/http/handlers/invoice/alerts"
	"github.com/Franklp24/gestor-facturas/internal/http/handlers/invoice/create"
	"github.com/Franklp24/gestor-facturas/internal/http/handlers/invoice/health"
	"github.com/Franklp24/gestor-facturas/internal/http/handlers/invoice/list"
	"github.com/Franklp24/gestor-facturas/internal/http/handlers/invoice/markpaid"
	"github.com/Franklp24/gestor-facturas/internal/http/handlers/invoice/remove"
	"github.com/Franklp24/gestor-facturas/internal/http/mware"
	invoiceservice "github.com/Franklp24/gestor-facturas/internal/services/invoice"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, invoiceService *invoiceservice.InvoiceService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mware.RateLimitMiddleware(logger))
		r.Post("/invoices", create.New(logger, invoiceService).ServeHTTP)
		r.Get("/invoices", list.New(logger, invoiceService).ServeHTTP)
		r.Get("/invoices/alerts", alerts.New(logger, invoiceService).ServeHTTP)
		r.Delete("/invoices/{id}", remove.New(logger, invoiceService).ServeHTTP)
		r.Post("/invoices/{id}/pay", markpaid.New(logger, invoiceService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
