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

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{uuid.NewString(), true},
		{"", false},
		{"not-a-uuid", false},
		{"invalidId", false},
		{"{" + uuid.NewString() + "}", false},
		{"urn:uuid:" + uuid.NewString(), false},
		{"6ba7b8109dad11d180b400c04fd430c8", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidID(tt.id), tt.id)
	}
}

// countStatements считает запросы, дошедшие до базы после регистрации.
func countStatements(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	n := new(int)
	hit := func(*gorm.DB) { *n++ }
	cb := db.Callback()
	require.NoError(t, cb.Query().Before("gorm:query").Register("test:count_query", hit))
	require.NoError(t, cb.Delete().Before("gorm:delete").Register("test:count_delete", hit))
	require.NoError(t, cb.Create().Before("gorm:create").Register("test:count_create", hit))
	return n
}

func TestMalformedIDsNeverReachDatabase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := mkUser(t, db, "owner")
	list := mkSubject(t, db, u.ID, model.SubjectChecklist, 1)
	deck := mkSubject(t, db, u.ID, model.SubjectFlashcards, 1)

	caps := ProbeCapabilities(db)
	subjects := NewSubjectRepository(db, caps)
	cards := NewCardRepository(db, caps)
	checklist := NewChecklistRepository(db)
	hits := countStatements(t, db)

	_, err := subjects.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = subjects.Detail(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, subjects.Delete(ctx, "not-a-uuid"), gorm.ErrRecordNotFound)

	_, err = cards.GetInSubject(ctx, deck.ID, "bogus")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	ok, err := cards.Delete(ctx, deck.ID, "bogus")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = checklist.GetItem(ctx, list.ID, "bogus")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	ok, err = checklist.DeleteItem(ctx, list.ID, "bogus")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = checklist.LogEntries(ctx, list.ID, u.ID, []string{"bogus", "also-bogus"}, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNoValidItems)

	assert.Zero(t, *hits)

	// корректные id из того же списка по-прежнему пишутся
	entries, err := checklist.LogEntries(ctx, list.ID, u.ID, []string{"bogus", list.ChecklistItems[0].ID}, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, list.ChecklistItems[0].ID, entries[0].ItemID)
}
