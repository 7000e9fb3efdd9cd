package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	fsrepo "StudyHub/internal/cli/repo/fs"
)

const cookieName = "auth_token"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Error — ошибка, которую вернул сервер: {"error","message","details"}.
type Error struct {
	Status  int               `json:"-"`
	Kind    string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("server status %d: %s", e.Status, e.Message)
	}
	msg := fmt.Sprintf("%s: %s", strings.ToLower(e.Kind), e.Message)
	for field, text := range e.Details {
		msg += fmt.Sprintf("\n  %s: %s", field, text)
	}
	return msg
}

// Do отправляет запрос с JSON-телом (payload может быть nil) и читает ответ целиком.
// Если token не пустой, он передаётся как auth cookie.
func Do(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Cookie", cookieName+"="+token)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, data, nil
}

// PostJSON sends a JSON POST request.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodPost, url, payload, token)
}

func GetJSON(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodGet, url, nil, token)
}

func DeleteJSON(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodDelete, url, nil, token)
}

// DecodeError превращает не-2xx ответ в *Error.
func DecodeError(resp *http.Response, body []byte) error {
	e := &Error{Status: resp.StatusCode}
	if err := json.Unmarshal(body, e); err != nil || e.Kind == "" {
		e.Kind = ""
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

// IsKind проверяет тип серверной ошибки: IsKind(err, "CONFLICT").
func IsKind(err error, kind string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его через файловое хранилище.
func PersistAuthFromResponse(resp *http.Response) error {
	store := fsrepo.AuthFSStore{}
	for _, c := range resp.Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return store.Save(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}
