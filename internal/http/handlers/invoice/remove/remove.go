// Package remove реализует HTTP-обработчик удаления фактуры по ID.
// Удаление идемпотентно: отсутствующий ID — не ошибка, в ответе
// возвращается ноль удалённых записей.
package remove

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
	Remove(ctx context.Context, id int) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить фактуру
// @Description Удаляет фактуру по ID. Отсутствующий ID — no-op.
// @Tags Invoices
// @Produce  json
// @Param id path int true "ID фактуры"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.remove"

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

	res, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to delete invoice", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete invoice"))
		return
	}

	log.Info("success to delete invoice", slog.Any("deleted invoices:", res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_count": res,
	}))
}
