package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preptrack/preptrack-go/internal/model"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	alice := &model.User{Username: "alice", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, alice))
	assert.Equal(t, int64(1), alice.ID)

	assert.ErrorIs(t, users.Create(ctx, &model.User{Username: "alice"}), ErrDuplicateUsername)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, *alice, *got)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryQuestions(t *testing.T) {
	ctx := context.Background()
	questions := NewMemoryStore().Questions()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, questions.Create(ctx, &model.Question{ID: "a", UserID: 1, Title: "old", CreatedAt: base}))
	require.NoError(t, questions.Create(ctx, &model.Question{ID: "b", UserID: 1, Title: "new", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, questions.Create(ctx, &model.Question{ID: "c", UserID: 2, Title: "other", CreatedAt: base}))

	list, err := questions.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	review := true
	assert.ErrorIs(t, questions.UpdateFlags(ctx, "a", 2, model.UpdateQuestionRequest{ForReview: &review}), ErrQuestionNotFound)
	require.NoError(t, questions.UpdateFlags(ctx, "a", 1, model.UpdateQuestionRequest{ForReview: &review}))

	got, err := questions.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.ForReview)
	assert.False(t, got.Completed)

	assert.ErrorIs(t, questions.Delete(ctx, "a", 2), ErrQuestionNotFound)
	require.NoError(t, questions.Delete(ctx, "a", 1))
	assert.ErrorIs(t, questions.Delete(ctx, "a", 1), ErrQuestionNotFound)

	_, err = questions.GetByID(ctx, "a")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
