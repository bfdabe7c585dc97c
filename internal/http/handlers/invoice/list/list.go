// Package list реализует HTTP-обработчик листинга фактур.
//
// Handler возвращает все фактуры, упорядоченные по тексту даты истечения,
// каждую с вычисленным статусом и признаком скорого истечения, а также
// агрегированный признак риска по всему списку.
package list

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

// Handler управляет HTTP-запросами листинга фактур.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики листинга фактур.
type Service interface {
	List(ctx context.Context, direction string) (*models.ListResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список фактур
// @Description Возвращает все фактуры с вычисленным статусом и признаком скорого истечения.
// @Tags Invoices
// @Produce  json
// @Param direction query string false "Направление сортировки по дате: asc или desc (по умолчанию desc)"
// @Success 200 {object} map[string]any "Список фактур"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	direction := r.URL.Query().Get("direction")
	if direction != "asc" {
		direction = "desc"
	}

	result, err := h.service.List(r.Context(), direction)
	if err != nil {
		log.Error("failed to list invoices", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list invoices"))
		return
	}

	log.Info("list invoices", "count", len(result.Invoices))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count":           len(result.Invoices),
		"invoices":             result.Invoices,
		"has_outstanding_risk": result.HasOutstandingRisk,
	}))
}
