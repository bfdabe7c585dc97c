// Package create реализует HTTP-обработчик для создания новых фактур.
//
// Handler принимает JSON-запрос с данными фактуры, валидирует их,
// вызывает бизнес-логику создания через сервис и возвращает ID созданной
// записи в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Franklp24/gestor-facturas/internal/http/response"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/models"
)

// Handler управляет HTTP-запросами на создание новых фактур.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания фактуры,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания фактур
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания фактуры.
type Service interface {
	Create(ctx context.Context, req models.DummyInvoice) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую фактуру
// @Description Создает новую фактуру со статусом pending. Возвращает ID созданной записи.
// @Tags Invoices
// @Accept  json
// @Produce  json
// @Param request body models.DummyInvoice true "Данные новой фактуры"
// @Success 200 {object} map[string]any "Успешное создание фактуры"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании фактуры"
// @Router /invoices [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInvoice
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDueDate) {
			log.Error("invalid due date", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("field due_date must be a date in format 2006-01-02"))
			return
		}
		log.Error("failed to create invoice", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create invoice"))
		return
	}

	log.Info("success to create invoice", slog.Any("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"invoice_id": id,
	}))
}
