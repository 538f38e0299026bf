package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskbot/internal/analyzer"
	"taskbot/internal/manager"
)

// MessageRequest — входящее сообщение. Идентификатор владельца поставляет
// вызывающая сторона, он непрозрачен для сервиса.
type MessageRequest struct {
	OwnerID string `json:"owner_id"`
	Text    string `json:"text"`
}

type MessageResponse struct {
	Reply string `json:"reply"`
}

func NewRouter(ts *manager.TaskService) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/message", messageHandler(ts))
	r.Get("/healthz", healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func messageHandler(ts *manager.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MessageRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.OwnerID == "" || req.Text == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		outcome, err := ts.HandleMessage(r.Context(), req.OwnerID, req.Text)
		if err != nil {
			writeReply(w, statusFor(err), manager.FormatError(err))
			return
		}

		writeReply(w, http.StatusOK, manager.FormatOutcome(outcome))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, manager.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, analyzer.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, analyzer.ErrUnrecognized),
		errors.Is(err, analyzer.ErrInvalidArgument),
		errors.Is(err, manager.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeReply(w http.ResponseWriter, status int, reply string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(MessageResponse{Reply: reply})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
