package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"StudyHub/internal/config"
	"StudyHub/internal/study"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstRand всегда выбирает первую карточку пула, очередь идёт в порядке колоды.
type firstRand struct{}

func (firstRand) Float64() float64 { return 0 }

// fakeStudyServer отдаёт колоду из двух карточек и запоминает записанные сессии.
type fakeStudyServer struct {
	mu       sync.Mutex
	sessions []study.Result
	cookies  []string
}

func (f *fakeStudyServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cookies = append(f.cookies, r.Header.Get("Cookie"))
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/api/subjects/s1/study"):
			_, _ = w.Write([]byte(`{"subject_id":"s1","title":"Go","cards":[
				{"id":"c1","prompt":"chan","answer":"pipe","correct":0,"incorrect":0},
				{"id":"c2","prompt":"defer","answer":"later","correct":0,"incorrect":0}]}`))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/api/subjects/s1/sessions"):
			var res study.Result
			if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
				t.Errorf("decode session: %v", err)
			}
			f.sessions = append(f.sessions, res)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"x"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"NOT_FOUND","message":"subject not found"}`))
		}
	})
}

func withFirstRand(t *testing.T) {
	t.Helper()
	old := rng
	rng = firstRand{}
	t.Cleanup(func() { rng = old })
}

func TestStudy_RecordsResult(t *testing.T) {
	loggedIn(t, "alice")
	withFirstRand(t)
	out := withIO(t, "\ny\n\nn\n")

	srv := &fakeStudyServer{}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	err := (studyCmd{}).Run(context.Background(), &config.Config{ServerURL: ts.URL}, []string{"s1"})
	require.NoError(t, err)

	require.Len(t, srv.sessions, 1)
	res := srv.sessions[0]
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, 1, res.Incorrect)
	assert.Equal(t, 2, res.CardCount)
	assert.Equal(t, 1, res.DurationMin)
	assert.Equal(t, []study.CardResult{{CardID: "c1", Correct: 1}, {CardID: "c2", Incorrect: 1}}, res.Breakdown)
	assert.Contains(t, out.String(), "accuracy: 50%")
	assert.Contains(t, srv.cookies[0], "auth_token=tok-alice")
}

func TestStudy_RepeatIncorrectUntilCorrect(t *testing.T) {
	loggedIn(t, "alice")
	withFirstRand(t)
	// c1: неверно, c2: верно, c1 ещё раз: верно
	withIO(t, "\nn\n\ny\n\ny\n")

	srv := &fakeStudyServer{}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL, RepeatIncorrect: true}
	require.NoError(t, (studyCmd{}).Run(context.Background(), cfg, []string{"s1"}))

	require.Len(t, srv.sessions, 1)
	res := srv.sessions[0]
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 1, res.Incorrect)
	assert.Equal(t, 2, res.CardCount)
}

func TestStudy_QuitRecordsAnsweredAndRemembersSubject(t *testing.T) {
	loggedIn(t, "alice")
	withFirstRand(t)
	withIO(t, "\nmaybe\ny\n\nq\n")

	srv := &fakeStudyServer{}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()
	cfg := &config.Config{ServerURL: ts.URL}

	require.NoError(t, (studyCmd{}).Run(context.Background(), cfg, []string{"s1", "5"}))
	require.Len(t, srv.sessions, 1)
	assert.Equal(t, 1, srv.sessions[0].CardCount)
	assert.Equal(t, 1, srv.sessions[0].Correct)

	// без id берётся последний предмет; сразу q — ничего не записывается
	withIO(t, "\nq\n")
	require.NoError(t, (studyCmd{}).Run(context.Background(), cfg, nil))
	assert.Len(t, srv.sessions, 1)
}

func TestStudy_Errors(t *testing.T) {
	withTempConfig(t)
	withIO(t, "")
	cfg := &config.Config{ServerURL: "http://127.0.0.1:1"}

	// нет токена
	assert.ErrorIs(t, (studyCmd{}).Run(context.Background(), cfg, []string{"s1"}), ErrNotLoggedIn)
	// нет последнего предмета
	assert.ErrorIs(t, (studyCmd{}).Run(context.Background(), cfg, nil), ErrUsage)

	loggedIn(t, "alice")
	srv := &fakeStudyServer{}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()
	cfg.ServerURL = ts.URL

	assert.ErrorIs(t, (studyCmd{}).Run(context.Background(), cfg, []string{"s1", "many"}), ErrUsage)
	err := (studyCmd{}).Run(context.Background(), cfg, []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject not found")
}
