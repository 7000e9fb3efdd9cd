package handlers

import (
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CardHandler struct {
	CardService *service.CardService
	Logger      *zap.SugaredLogger
}

func NewCardHandler(cardService *service.CardService, logger *zap.SugaredLogger) *CardHandler {
	return &CardHandler{CardService: cardService, Logger: logger}
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.CardInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "CreateCard", err)
		return
	}

	card, err := h.CardService.Add(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.Logger, "CreateCard", err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.CardInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "UpdateCard", err)
		return
	}

	card, err := h.CardService.Update(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "cardId"), req)
	if err != nil {
		writeError(w, h.Logger, "UpdateCard", err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.CardService.Delete(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "cardId")); err != nil {
		writeError(w, h.Logger, "DeleteCard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
