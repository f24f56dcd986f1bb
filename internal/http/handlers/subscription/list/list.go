// Package list реализует HTTP-обработчик списка подписок.
//
// Параметр запроса filter выбирает категорию: all, active, expiring,
// expired, renew или cancel. Неизвестная категория — ошибка запроса,
// молчаливого отката к all нет. Каждая запись возвращается вместе со
// статусом отображения.
package list

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/lifecycle"
)

// Handler управляет HTTP-запросами на получение списка подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	ListFiltered(selector lifecycle.Selector, today time.Time) ([]models.Subscription, error)
}

// item — запись списка вместе со статусом отображения.
type item struct {
	models.Subscription
	DisplayStatus models.DisplayStatus `json:"displayStatus"`
	IsPlanned     bool                 `json:"isPlanned"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	selector := lifecycle.Selector(r.URL.Query().Get("filter"))
	if selector == "" {
		selector = lifecycle.SelectorAll
	}

	today := time.Now()
	subs, err := h.service.ListFiltered(selector, today)
	if errors.Is(err, lifecycle.ErrUnknownSelector) {
		log.Error("unknown filter selector", slog.String("selector", string(selector)))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown filter selector"))
		return
	}
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	items := make([]item, 0, len(subs))
	for _, sub := range subs {
		displayStatus := lifecycle.Resolve(sub, today)
		items = append(items, item{
			Subscription:  sub,
			DisplayStatus: displayStatus,
			IsPlanned:     displayStatus.IsPlanned(),
		})
	}

	log.Info("listed subscriptions", slog.String("filter", string(selector)), slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscriptions": items,
		"count":         len(items),
	}))
}
