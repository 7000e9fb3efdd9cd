package handlers

import (
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler обрабатывает пункты чек-листа и отметки практики.
type ItemHandler struct {
	ChecklistService *service.ChecklistService
	Logger           *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(checklistService *service.ChecklistService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ChecklistService: checklistService, Logger: logger}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.ItemInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "CreateItem", err)
		return
	}

	item, err := h.ChecklistService.AddItem(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.Logger, "CreateItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.ItemInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "UpdateItem", err)
		return
	}

	item, err := h.ChecklistService.UpdateItem(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), req)
	if err != nil {
		writeError(w, h.Logger, "UpdateItem", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.ChecklistService.DeleteItem(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemId")); err != nil {
		writeError(w, h.Logger, "DeleteItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Practice — отметка одного пункта.
func (h *ItemHandler) Practice(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	entry, err := h.ChecklistService.PracticeItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), userID)
	if err != nil {
		writeError(w, h.Logger, "PracticeItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// LogPractice — пакетная отметка: {"item_ids": [...]}.
func (h *ItemHandler) LogPractice(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.PracticeInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "LogPractice", err)
		return
	}

	entries, err := h.ChecklistService.LogPractice(r.Context(), chi.URLParam(r, "id"), userID, req)
	if err != nil {
		writeError(w, h.Logger, "LogPractice", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"logged":  len(entries),
		"entries": entries,
	})
}
