// Package stats реализует HTTP-обработчик панели статистики.
//
// Счётчики строятся только по вычисленному статусу: запись с намерением
// renew и просроченной датой учитывается в expired. Сумма трёх счётчиков
// всегда равна размеру коллекции.
package stats

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler управляет HTTP-запросами на получение статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики агрегирования.
type Service interface {
	Stats(today time.Time) models.Stats
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result := h.service.Stats(time.Now())

	log.Info("stats computed", slog.Int("total", result.Total))
	render.JSON(w, r, response.OKWithData(result))
}
