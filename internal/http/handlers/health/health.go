// Package health реализует HTTP-обработчик проверки работоспособности сервиса.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Handler обрабатывает запросы проверки работоспособности.
type Handler struct{}

// New создает новый экземпляр Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка работоспособности
// @Description Возвращает статус сервиса и текущее время.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string "Статус сервиса"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
