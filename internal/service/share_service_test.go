package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareService_UpsertIsIdempotent(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	owner := env.user(t, "owner")
	_ = env.user(t, "teammate")
	s := env.flashcards(t, owner.ID, 1)

	first, err := env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "teammate", Role: model.RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, first.Role)

	second, err := env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "teammate", Role: model.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, second.Role)

	list, err := env.shares.List(ctx, owner.ID, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.RoleEditor, list[0].Role)
}

func TestShareService_Errors(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	owner := env.user(t, "owner")
	mate := env.user(t, "teammate")
	s := env.flashcards(t, owner.ID, 1)

	_, err := env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "owner"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "self share")

	_, err = env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "nobody"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.shares.Share(ctx, owner.ID, s.ID, ShareInput{Username: "teammate", Role: "ADMIN"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.shares.Share(ctx, mate.ID, s.ID, ShareInput{Username: "owner"})
	assert.ErrorIs(t, err, apperr.ErrForbidden, "only owner shares")

	err = env.shares.Unshare(ctx, owner.ID, s.ID, "teammate")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "nothing to remove")
}

func TestShareService_DefaultRoleIsViewer(t *testing.T) {
	env := newTestEnv(t, true)
	owner := env.user(t, "owner")
	_ = env.user(t, "teammate")
	s := env.flashcards(t, owner.ID, 1)

	sh, err := env.shares.Share(context.Background(), owner.ID, s.ID, ShareInput{Username: "teammate"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, sh.Role)
}
