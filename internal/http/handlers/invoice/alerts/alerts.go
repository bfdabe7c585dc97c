// Package alerts реализует HTTP-обработчик списка скоро истекающих фактур.
//
// Handler возвращает только фактуры с установленным флагом предупреждения:
// неоплаченные, чья дата истечения попадает в окно ближайших дней.
package alerts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Franklp24/gestor-facturas/internal/http/response"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/models"
)

// Handler управляет HTTP-запросами списка предупреждений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки предупреждений.
type Service interface {
	Alerts(ctx context.Context) ([]models.InvoiceView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Скоро истекающие фактуры
// @Description Возвращает неоплаченные фактуры, истекающие в ближайшие дни, по возрастанию даты.
// @Tags Invoices
// @Produce  json
// @Success 200 {object} map[string]any "Список предупреждений"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/alerts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.alerts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	views, err := h.service.Alerts(r.Context())
	if err != nil {
		log.Error("failed to list alerts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list alerts"))
		return
	}

	log.Info("list alerts", "count", len(views))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"alert_count": len(views),
		"invoices":    views,
	}))
}
