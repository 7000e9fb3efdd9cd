package repo

import (
	"StudyHub/internal/model"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(subjectID string, userID int64, correct, incorrect int) *model.StudySession {
	return &model.StudySession{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		UserID:    userID,
		Correct:   correct,
		Incorrect: incorrect,
		CardCount: 1,
		StudiedAt: time.Now().UTC(),
	}
}

func TestSessionRepository_IncrementsAreAdditive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := mkUser(t, db, "owner")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)
	cardID := s.Cards[0].ID
	r := NewSessionRepository(db)

	require.NoError(t, r.Record(ctx, newSession(s.ID, u.ID, 2, 1), []CardDelta{{CardID: cardID, Correct: 2, Incorrect: 1}}, true))
	require.NoError(t, r.Record(ctx, newSession(s.ID, u.ID, 1, 0), []CardDelta{{CardID: cardID, Correct: 1}}, true))

	perfs, err := NewStatsRepository(db).CardPerformance(ctx, s.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, perfs, 1)
	assert.Equal(t, 3, perfs[0].CorrectCount)
	assert.Equal(t, 1, perfs[0].IncorrectCount)

	totals, err := r.Totals(ctx, s.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionTotals{Correct: 3, Incorrect: 1, Count: 2}, totals)
}

func TestSessionRepository_ForeignCardRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := mkUser(t, db, "owner")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)
	other := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)
	r := NewSessionRepository(db)

	deltas := []CardDelta{
		{CardID: s.Cards[0].ID, Correct: 1},
		{CardID: other.Cards[0].ID, Correct: 1},
	}
	err := r.Record(ctx, newSession(s.ID, u.ID, 2, 0), deltas, true)
	assert.ErrorIs(t, err, ErrInvalidCardRefs)

	var sessions, perfs int64
	require.NoError(t, db.Model(&model.StudySession{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&model.CardPerformance{}).Count(&perfs).Error)
	assert.Zero(t, sessions)
	assert.Zero(t, perfs)
}

func TestSessionRepository_WithoutPerformanceTable(t *testing.T) {
	db := newTestDBWith(t, false)
	ctx := context.Background()
	u := mkUser(t, db, "legacy")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 2)
	r := NewSessionRepository(db)

	sess := newSession(s.ID, u.ID, 1, 1)
	err := r.Record(ctx, sess, []CardDelta{{CardID: s.Cards[0].ID, Correct: 1}, {CardID: s.Cards[1].ID, Incorrect: 1}}, false)
	require.NoError(t, err)

	list, err := r.ListRecent(ctx, s.ID, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Correct)
	assert.Equal(t, 1, list[0].Incorrect)
}

func TestSessionRepository_ListRecentNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := mkUser(t, db, "owner")
	s := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)
	r := NewSessionRepository(db)

	old := newSession(s.ID, u.ID, 1, 0)
	old.StudiedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, r.Record(ctx, old, nil, true))
	fresh := newSession(s.ID, u.ID, 0, 1)
	require.NoError(t, r.Record(ctx, fresh, nil, true))

	list, err := r.ListRecent(ctx, s.ID, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].ID)
}
