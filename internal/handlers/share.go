package handlers

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShareHandler — доступ соавторов к предмету (только владелец).
type ShareHandler struct {
	ShareService *service.ShareService
	Logger       *zap.SugaredLogger
}

func NewShareHandler(shareService *service.ShareService, logger *zap.SugaredLogger) *ShareHandler {
	return &ShareHandler{ShareService: shareService, Logger: logger}
}

func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	shares, err := h.ShareService.List(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "ListShares", err)
		return
	}
	writeJSON(w, http.StatusOK, shares)
}

func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.ShareInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "Share", err)
		return
	}

	share, err := h.ShareService.Share(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.Logger, "Share", err)
		return
	}
	writeJSON(w, http.StatusOK, share)
}

// Unshare: DELETE /share?username=...
func (h *ShareHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, h.Logger, "Unshare", apperr.Field("username", "this field is required"))
		return
	}

	if err := h.ShareService.Unshare(r.Context(), userID, chi.URLParam(r, "id"), username); err != nil {
		writeError(w, h.Logger, "Unshare", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
