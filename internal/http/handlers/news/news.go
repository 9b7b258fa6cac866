// Package news реализует HTTP-обработчик новостной ленты.
//
// Обработчик никогда не возвращает ошибку клиенту: агрегатор сам
// подставляет резервные материалы, если внешний источник недоступен.
package news

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// Service описывает интерфейс получения новостной ленты.
type Service interface {
	Fetch(ctx context.Context, source string) []models.NewsArticle
}

// Handler обрабатывает HTTP-запросы новостной ленты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Новостная лента
// @Description Возвращает свежие материалы по источнику. При недоступности внешнего API отдает резервную подборку.
// @Tags News
// @Produce  json
// @Security BearerAuth
// @Param source query string false "Источник: all, new-vision, monitor, nation, social"
// @Success 200 {object} map[string][]models.NewsArticle "Список материалов"
// @Router /news [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "all"
	}

	articles := h.service.Fetch(r.Context(), source)
	log.Info("news fetched",
		slog.String("source", source),
		slog.Int("count", len(articles)))

	render.JSON(w, r, map[string][]models.NewsArticle{"articles": articles})
}
