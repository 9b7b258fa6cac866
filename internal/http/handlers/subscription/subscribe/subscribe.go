// Package subscribe реализует HTTP-обработчик оформления подписки.
//
// Повторное оформление заменяет текущую подписку: у аккаунта всегда
// не более одной активной записи.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-paper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-paper/internal/http/response"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
	"github.com/magabrotheeeer/daily-paper/internal/services/subscription"
)

// Service описывает интерфейс оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, accountID string, req models.DummySubscription) (*models.Subscription, error)
}

// Handler обрабатывает HTTP-запросы оформления подписки.
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
// @Summary Оформление подписки
// @Description Оформляет подписку выбранного тарифа, заменяя прежнюю запись аккаунта.
// @Tags Subscription
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummySubscription true "Тариф и выбор газеты"
// @Success 200 {object} models.Subscription "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Неизвестный тариф или не выбрана газета"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.subscribe"

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

	var req models.DummySubscription
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

	sub, err := h.service.Subscribe(r.Context(), account.ID, req)
	if err != nil {
		if errors.Is(err, subscription.ErrUnknownPlan) || errors.Is(err, subscription.ErrNewspaperRequired) {
			log.Error("subscription rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	log.Info("subscription created",
		slog.String("user_id", account.ID),
		slog.String("plan", sub.Plan))

	render.JSON(w, r, sub)
}
