// Package selection реализует HTTP-обработчики работы с выбором записей.
//
// Выбор — множество отмеченных подписок для пакетных операций. Он живет
// в памяти сервиса и не сохраняется в хранилище.
package selection

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Handler управляет HTTP-запросами на изменение и чтение выбора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выбора записей.
type Service interface {
	Select(id int64) error
	Deselect(id int64)
	ClearSelection()
	SelectedIDs() []int64
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Select отмечает запись как выбранную.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.selection.select"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.Select(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("subscription not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		log.Error("failed to select subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not select subscription"))
		return
	}

	log.Info("subscription selected", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}

// Deselect снимает отметку с записи. Снятие отметки с невыбранной
// записи не является ошибкой.
func (h *Handler) Deselect(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.selection.deselect"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	h.service.Deselect(id)

	log.Info("subscription deselected", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}

// List возвращает идентификаторы выбранных записей.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.selection.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ids := h.service.SelectedIDs()

	log.Info("selection listed", slog.Int("count", len(ids)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"ids":   ids,
		"count": len(ids),
	}))
}

// Clear снимает отметку со всех записей.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.selection.clear"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.service.ClearSelection()

	log.Info("selection cleared")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cleared": true,
	}))
}
