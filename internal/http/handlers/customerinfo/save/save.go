// Package save реализует HTTP-обработчик сохранения адреса доставки читателя.
//
// Запись полностью заменяет прежнюю: частичных обновлений нет,
// клиент каждый раз присылает все поля формы.
package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-paper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-paper/internal/http/response"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// Service описывает интерфейс сохранения данных доставки.
type Service interface {
	Save(ctx context.Context, accountID string, info models.DummyCustomerInfo) (*models.CustomerInfo, error)
}

// Handler обрабатывает HTTP-запросы сохранения адреса доставки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранение адреса доставки
// @Description Сохраняет данные доставки текущего аккаунта, полностью заменяя прежнюю запись.
// @Tags CustomerInfo
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCustomerInfo true "Данные формы доставки"
// @Success 200 {object} map[string]any "Сохраненная запись"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /customer-info [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customerinfo.save"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	account, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		log.Error("account missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyCustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	info, err := h.service.Save(r.Context(), account.ID, req)
	if err != nil {
		log.Error("failed to save customer info", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	log.Info("customer info saved", slog.String("user_id", account.ID))

	render.JSON(w, r, map[string]any{
		"success": true,
		"data":    info,
	})
}
