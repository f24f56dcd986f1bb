// Package intentionbatch реализует HTTP-обработчик пакетной установки
// намерения для набора выбранных подписок.
//
// Пакет применяется атомарно относительно наблюдателей: одна мутация,
// одна запись в хранилище; отсутствующие ID молча пропускаются.
package intentionbatch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Handler управляет HTTP-запросами на пакетную установку намерения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики пакетной операции.
type Service interface {
	ApplyIntentionBatch(ctx context.Context, ids []int64, intention models.Intention) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.intentionbatch"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBatchIntention
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.ApplyIntentionBatch(r.Context(), req.IDs, models.Intention(req.Intention))
	switch {
	case errors.Is(err, storage.ErrInvalidIntention):
		log.Error("invalid intention", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("intention must be renew or cancel"))
		return
	case errors.Is(err, storage.ErrPersist):
		log.Error("failed to persist batch", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to persist subscription"))
		return
	case err != nil:
		log.Error("failed to apply batch intention", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not apply intention"))
		return
	}

	log.Info("success to apply batch intention",
		slog.Int("requested", len(req.IDs)),
		slog.Int("updated", updated))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": updated,
	}))
}
