package handlers

import (
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	SessionService *service.SessionService
	Logger         *zap.SugaredLogger
}

func NewSessionHandler(sessionService *service.SessionService, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{SessionService: sessionService, Logger: logger}
}

// Record сохраняет итог тренировки по карточкам.
func (h *SessionHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.SessionInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "RecordSession", err)
		return
	}

	session, err := h.SessionService.Record(r.Context(), chi.URLParam(r, "id"), userID, req)
	if err != nil {
		writeError(w, h.Logger, "RecordSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	list, err := h.SessionService.List(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, h.Logger, "ListSessions", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
