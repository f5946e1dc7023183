package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/folio/internal/model"
)

func TestWorkService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.register(t, "ada").User.ID

	first, err := env.works.Create(ctx, userID, WorkInput{
		Title:       ptr(" Engine "),
		Description: ptr("   "),
		Link:        ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Engine", first.Title)
	assert.Equal(t, 0, first.SortOrder)
	assert.Equal(t, model.DefaultWorkCategory, first.Category)
	assert.Nil(t, first.Description)
	assert.Nil(t, first.Link)

	second, err := env.works.Create(ctx, userID, WorkInput{
		Title:    ptr("Notes"),
		Category: ptr("writing"),
		Link:     ptr("https://example.com/notes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)
	require.NotNil(t, second.Link)
	assert.Equal(t, "https://example.com/notes", *second.Link)

	for name, input := range map[string]WorkInput{
		"missing title": {},
		"blank title":   {Title: ptr("  ")},
		"long title":    {Title: ptr(string(make([]byte, 101)))},
		"bad link":      {Title: ptr("x"), Link: ptr("not a url")},
	} {
		_, err := env.works.Create(ctx, userID, input)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestWorkService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, "ada").User.ID
	grace := env.register(t, "grace").User.ID

	work, err := env.works.Create(ctx, ada, WorkInput{Title: ptr("Engine"), Link: ptr("https://example.com")})
	require.NoError(t, err)

	updated, err := env.works.Update(ctx, ada, work.ID, WorkInput{Description: ptr("Difference"), Link: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "Engine", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Difference", *updated.Description)
	assert.Nil(t, updated.Link)

	_, err = env.works.Update(ctx, grace, work.ID, WorkInput{Title: ptr("Stolen")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, env.works.Delete(ctx, grace, work.ID), ErrNotFound)
	require.NoError(t, env.works.Delete(ctx, ada, work.ID))
	assert.ErrorIs(t, env.works.Delete(ctx, ada, work.ID), ErrNotFound)
}

func TestWorkService_Reorder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.register(t, "ada").User.ID

	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		w, err := env.works.Create(ctx, userID, WorkInput{Title: ptr(title)})
		require.NoError(t, err)
		ids = append(ids, w.ID)
	}

	require.NoError(t, env.works.Reorder(ctx, userID, []int64{ids[2], ids[0], ids[1]}))

	list, err := env.works.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].Title, list[1].Title, list[2].Title})
	assert.Equal(t, []int{0, 1, 2}, []int{list[0].SortOrder, list[1].SortOrder, list[2].SortOrder})

	assert.ErrorIs(t, env.works.Reorder(ctx, userID, nil), ErrValidation)
	assert.NoError(t, env.works.Reorder(ctx, userID, []int64{}))
}
