// Package get реализует HTTP-обработчик чтения адреса доставки читателя.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-paper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-paper/internal/http/response"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
	"github.com/magabrotheeeer/daily-paper/internal/services/customer"
)

// Service описывает интерфейс чтения данных доставки.
type Service interface {
	Get(ctx context.Context, accountID string) (*models.CustomerInfo, error)
}

// Handler обрабатывает HTTP-запросы чтения адреса доставки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Адрес доставки читателя
// @Description Возвращает сохраненные данные доставки текущего аккаунта.
// @Tags CustomerInfo
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.CustomerInfo "Данные доставки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Данные не найдены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /customer-info [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customerinfo.get"

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

	info, err := h.service.Get(r.Context(), account.ID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("customer info not found"))
			return
		}
		log.Error("failed to read customer info", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, info)
}
