package service

import (
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mockInvalidator записывает вызовы Invalidate.
type mockInvalidator struct{ mock.Mock }

func (m *mockInvalidator) Invalidate(ctx context.Context, userID int64, paths ...string) {
	m.Called(userID, paths)
}

var _ ViewInvalidator = (*mockInvalidator)(nil)

// testEnv — сервисы поверх in-memory SQLite.
type testEnv struct {
	db          *gorm.DB
	users       repo.UserRepository
	access      *AccessResolver
	subjects    *SubjectService
	cards       *CardService
	checklist   *ChecklistService
	shares      *ShareService
	sessions    *SessionService
	analytics   *AnalyticsService
	invalidator *mockInvalidator
}

func newTestEnv(t *testing.T, withCardStats bool) *testEnv {
	t.Helper()
	db, err := repo.InitDB("file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db, withCardStats))
	t.Cleanup(func() { _ = repo.Close(db) })

	caps := repo.ProbeCapabilities(db)
	logger := zap.NewNop().Sugar()
	inv := new(mockInvalidator)
	inv.On("Invalidate", mock.Anything, mock.Anything).Maybe()

	users := repo.NewUserRepository(db)
	subjectRepo := repo.NewSubjectRepository(db, caps)
	shareRepo := repo.NewShareRepository(db)
	cardRepo := repo.NewCardRepository(db, caps)
	checklistRepo := repo.NewChecklistRepository(db)
	sessionRepo := repo.NewSessionRepository(db)
	statsRepo := repo.NewStatsRepository(db)
	access := NewAccessResolver(subjectRepo, shareRepo)

	return &testEnv{
		db:          db,
		users:       users,
		access:      access,
		subjects:    NewSubjectService(access, subjectRepo, cardRepo, checklistRepo, sessionRepo, statsRepo, caps, logger),
		cards:       NewCardService(access, cardRepo, logger),
		checklist:   NewChecklistService(access, checklistRepo, inv, logger),
		shares:      NewShareService(access, shareRepo, users, logger),
		sessions:    NewSessionService(access, sessionRepo, caps, inv, logger),
		analytics:   NewAnalyticsService(subjectRepo, statsRepo, caps, logger),
		invalidator: inv,
	}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), &model.User{Username: username, PasswordHash: "x"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) flashcards(t *testing.T, ownerID int64, n int) *model.Subject {
	t.Helper()
	in := CreateSubjectInput{Title: "Go idioms", Type: model.SubjectFlashcards}
	for i := 0; i < n; i++ {
		in.Cards = append(in.Cards, CardInput{Prompt: "prompt", Answer: "answer"})
	}
	s, err := e.subjects.Create(context.Background(), ownerID, in)
	require.NoError(t, err)
	return s
}

func (e *testEnv) checklistSubject(t *testing.T, ownerID int64, titles ...string) *model.Subject {
	t.Helper()
	in := CreateSubjectInput{Title: "Morning practice", Type: model.SubjectChecklist}
	for _, title := range titles {
		in.Items = append(in.Items, ItemInput{Title: title})
	}
	s, err := e.subjects.Create(context.Background(), ownerID, in)
	require.NoError(t, err)
	return s
}

func (e *testEnv) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}
