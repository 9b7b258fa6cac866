// Package signup реализует HTTP-обработчик регистрации читателя.
//
// Handler принимает JSON-запрос с email, паролем и именем, валидирует поля
// и делегирует создание аккаунта шлюзу провайдера учётных записей.
// Выдача токена остаётся за провайдером: после регистрации клиент
// выполняет вход напрямую у него.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-paper/internal/http/response"
	"github.com/magabrotheeeer/daily-paper/internal/identity"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// Request — структура входных данных для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// Service описывает интерфейс создания аккаунта у провайдера.
type Service interface {
	CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	gateway  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, gateway Service) *Handler {
	return &Handler{
		log:      log,
		gateway:  gateway,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация читателя
// @Description Создает аккаунт через провайдера учётных записей. Email подтверждается сразу.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового аккаунта"
// @Success 200 {object} map[string]any "Созданный аккаунт"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или отказ провайдера"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	account, err := h.gateway.CreateAccount(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		var verr *identity.ValidationError
		if errors.As(err, &verr) {
			log.Error("identity provider rejected signup", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(verr.Message))
			return
		}
		log.Error("failed to create account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	log.Info("account created", slog.String("id", account.ID))

	render.JSON(w, r, map[string]any{"user": account})
}
