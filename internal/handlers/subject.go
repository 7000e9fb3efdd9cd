package handlers

import (
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SubjectHandler — CRUD предметов и колода для тренировки.
type SubjectHandler struct {
	SubjectService *service.SubjectService
	Logger         *zap.SugaredLogger
}

func NewSubjectHandler(subjectService *service.SubjectService, logger *zap.SugaredLogger) *SubjectHandler {
	return &SubjectHandler{SubjectService: subjectService, Logger: logger}
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	subjects, err := h.SubjectService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "ListSubjects", err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.CreateSubjectInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "CreateSubject", err)
		return
	}

	subject, err := h.SubjectService.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.Logger, "CreateSubject", err)
		return
	}
	writeJSON(w, http.StatusCreated, subject)
}

func (h *SubjectHandler) Detail(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	detail, err := h.SubjectService.Detail(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "SubjectDetail", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.UpdateSubjectInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "UpdateSubject", err)
		return
	}

	subject, err := h.SubjectService.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.Logger, "UpdateSubject", err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.SubjectService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteSubject", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StudyDeck отдаёт карточки со статистикой ответов текущего пользователя.
func (h *SubjectHandler) StudyDeck(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	deck, err := h.SubjectService.StudyDeck(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "StudyDeck", err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}
