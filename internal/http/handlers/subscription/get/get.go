// Package get реализует HTTP-обработчик чтения подписки читателя.
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
	"github.com/magabrotheeeer/daily-paper/internal/services/subscription"
)

// Service описывает интерфейс чтения подписки.
type Service interface {
	Get(ctx context.Context, accountID string) (*models.Subscription, error)
}

// Handler обрабатывает HTTP-запросы чтения подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подписка читателя
// @Description Возвращает текущую подписку аккаунта.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.Subscription "Текущая подписка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.get"

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

	sub, err := h.service.Get(r.Context(), account.ID)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("no subscription found"))
			return
		}
		log.Error("failed to read subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, sub)
}
