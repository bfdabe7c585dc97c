// Package markpaid реализует HTTP-обработчик пометки фактуры оплаченной.
// Переход pending → paid односторонний и терминальный; повторная пометка
// и отсутствующий ID — тихие no-op.
package markpaid

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Franklp24/gestor-facturas/internal/http/response"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	MarkPaid(ctx context.Context, id int) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пометить фактуру оплаченной
// @Description Переводит фактуру в статус paid. Отсутствующий ID — no-op.
// @Tags Invoices
// @Produce  json
// @Param id path int true "ID фактуры"
// @Success 200 {object} map[string]any "Количество изменённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/{id}/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.markpaid"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	res, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		log.Error("failed to mark invoice paid", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark invoice paid"))
		return
	}

	log.Info("success to mark invoice paid", slog.Any("updated invoices:", res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated_count": res,
	}))
}
