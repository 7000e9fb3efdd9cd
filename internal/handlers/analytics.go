package handlers

import (
	"StudyHub/internal/middleware"
	"StudyHub/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
	Logger           *zap.SugaredLogger
	now              func() time.Time
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.SugaredLogger) *AnalyticsHandler {
	return &AnalyticsHandler{
		AnalyticsService: analyticsService,
		Logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Overview — сводка за последние 12 месяцев по всем доступным предметам.
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	overview, err := h.AnalyticsService.Overview(r.Context(), userID, h.now())
	if err != nil {
		writeError(w, h.Logger, "Analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	dashboard, err := h.AnalyticsService.Dashboard(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "Dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
