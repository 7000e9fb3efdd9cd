package handlers

import (
	"StudyHub/internal/apperr"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// errorResponse — тело ответа с ошибкой.
type errorResponse struct {
	Error   apperr.Kind       `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindUnauthenticated: http.StatusUnauthorized,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindConflict:        http.StatusConflict,
	apperr.KindInternal:        http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку сервиса в HTTP-ответ.
// Внутренние подробности клиенту не отдаются.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		ae = apperr.Internal("internal error", err)
	}

	switch ae.Kind {
	case apperr.KindInternal:
		logger.Errorw(op+": internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: ae.Kind, Message: "internal error"})
		return
	case apperr.KindValidation:
		logger.Warnw(op+": invalid input", "message", ae.Message, "fields", ae.Fields)
	}

	status, known := statusByKind[ae.Kind]
	if !known {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Error: ae.Kind, Message: ae.Message, Details: ae.Fields})
}

// maxBodyBytes — предел тела запроса после распаковки gzip.
const maxBodyBytes = 4 << 20

// decodeJSON читает тело запроса. Битый JSON, лишние поля и слишком большое тело — VALIDATION.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("request body too large", nil)
		}
		// encoding/json не экспортирует тип ошибки для неизвестного поля
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return apperr.Field(strings.Trim(field, `"`), "unknown field")
		}
		return apperr.Validation("invalid request body", nil)
	}
	return nil
}
