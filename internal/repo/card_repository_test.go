package repo

import (
	"StudyHub/internal/model"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func recordCardStats(t *testing.T, db *gorm.DB, s *model.Subject, userID int64) {
	t.Helper()
	sess := &model.StudySession{ID: uuid.NewString(), SubjectID: s.ID, UserID: userID, Correct: 1, CardCount: 1, StudiedAt: time.Now().UTC()}
	require.NoError(t, NewSessionRepository(db).Record(context.Background(), sess, []CardDelta{{CardID: s.Cards[0].ID, Correct: 1}}, true))
}

// SQLite без PRAGMA foreign_keys: каскадов нет, чистка идёт только кодом репозитория.
func newTestDBWithoutFK(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB("file::memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db, true))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func countPerformance(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.CardPerformance{}).Count(&n).Error)
	return n
}

func TestCardRepository_DeleteClearsPerformance(t *testing.T) {
	db := newTestDBWithoutFK(t)
	ctx := context.Background()
	u := mkUser(t, db, "owner")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 2)
	recordCardStats(t, db, s, u.ID)
	require.Equal(t, int64(1), countPerformance(t, db))

	r := NewCardRepository(db, Capabilities{CardPerformance: true})
	ok, err := r.Delete(ctx, s.ID, s.Cards[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, countPerformance(t, db))

	cards, err := r.ListBySubject(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestSubjectRepository_DeleteClearsPerformance(t *testing.T) {
	db := newTestDBWithoutFK(t)
	u := mkUser(t, db, "owner")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)
	recordCardStats(t, db, s, u.ID)

	require.NoError(t, NewSubjectRepository(db, Capabilities{CardPerformance: true}).Delete(context.Background(), s.ID))
	assert.Zero(t, countPerformance(t, db))
}

func TestCardRepository_DeleteFollowsCapabilities(t *testing.T) {
	db := newTestDBWithoutFK(t)
	ctx := context.Background()
	u := mkUser(t, db, "owner")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)
	recordCardStats(t, db, s, u.ID)

	// решение принимается по Capabilities, схема при удалении не проверяется
	ok, err := NewCardRepository(db, Capabilities{}).Delete(ctx, s.ID, s.Cards[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), countPerformance(t, db))

	legacy := newTestDBWith(t, false)
	lu := mkUser(t, legacy, "owner")
	ls := mkSubject(t, legacy, lu.ID, model.SubjectFlashcards, 1)
	ok, err = NewCardRepository(legacy, ProbeCapabilities(legacy)).Delete(ctx, ls.ID, ls.Cards[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
