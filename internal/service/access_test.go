package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessResolver_Levels(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	owner := env.user(t, "owner")
	viewer := env.user(t, "viewer")
	editor := env.user(t, "editor")
	stranger := env.user(t, "stranger")
	s := env.flashcards(t, owner.ID, 1)

	_, err := env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "viewer"})
	require.NoError(t, err)
	_, err = env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "editor", Role: model.RoleEditor})
	require.NoError(t, err)

	tests := []struct {
		name string
		user int64
		want Access
	}{
		{"owner", owner.ID, AccessOwner},
		{"editor", editor.ID, AccessEditor},
		{"viewer", viewer.ID, AccessViewer},
		{"stranger", stranger.ID, AccessNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := env.access.Resolve(ctx, tt.user, s.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessResolver_ReadHidesExistence(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	owner := env.user(t, "owner")
	stranger := env.user(t, "stranger")
	s := env.flashcards(t, owner.ID, 1)

	_, _, err := env.access.RequireRead(ctx, stranger.ID, s.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = env.access.RequireRead(ctx, stranger.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// на запись — FORBIDDEN и для чужого, и для несуществующего
	_, _, err = env.access.RequireParticipant(ctx, stranger.ID, s.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, _, err = env.access.RequireParticipant(ctx, stranger.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestAccessResolver_RevokedShareTakesEffectImmediately(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	owner := env.user(t, "owner")
	mate := env.user(t, "teammate")
	s := env.flashcards(t, owner.ID, 1)

	_, err := env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "teammate"})
	require.NoError(t, err)
	_, _, err = env.access.RequireRead(ctx, mate.ID, s.ID)
	require.NoError(t, err)

	require.NoError(t, env.shares.Unshare(ctx, owner.ID, s.ID, "teammate"))
	_, _, err = env.access.RequireRead(ctx, mate.ID, s.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAccess_String(t *testing.T) {
	assert.Equal(t, "OWNER", AccessOwner.String())
	assert.Equal(t, "EDITOR", AccessEditor.String())
	assert.Equal(t, "VIEWER", AccessViewer.String())
	assert.Equal(t, "NONE", AccessNone.String())
	assert.True(t, AccessEditor.CanEdit())
	assert.False(t, AccessViewer.CanEdit())
}

func TestAccessResolver_MalformedSubjectID(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	owner := env.user(t, "owner")

	a, s, err := env.access.Resolve(ctx, owner.ID, "not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, AccessNone, a)
	assert.Nil(t, s)

	_, _, err = env.access.RequireRead(ctx, owner.ID, "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, _, err = env.access.RequireParticipant(ctx, owner.ID, "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = env.access.RequireOwner(ctx, owner.ID, "'; drop table subjects; --")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
