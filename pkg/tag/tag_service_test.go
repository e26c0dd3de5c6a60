package tag

import (
	"context"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/testdb"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService(t *testing.T) {
	db := testdb.New(t)
	repo := NewTagRepository(db)
	service := NewTagService(repo)
	ctx := context.Background()

	inserted, err := repo.CreateTagsIfMissing(ctx, []*entities.Tag{
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	t.Run("Ordered By Name", func(t *testing.T) {
		tags, err := service.GetTags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "Breakfast", tags[0].Name)
		assert.Equal(t, "lunch", tags[1].Slug)
	})

	t.Run("Get By ID", func(t *testing.T) {
		tags, err := service.GetTags(ctx)
		require.NoError(t, err)

		tag, err := service.GetTagByID(ctx, tags[0].ID)
		require.NoError(t, err)
		assert.Equal(t, tags[0], tag)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := service.GetTagByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrTagNotFound)

		_, err = service.GetTagByID(ctx, "42")
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	t.Run("Seed Is Idempotent", func(t *testing.T) {
		inserted, err := repo.CreateTagsIfMissing(ctx, []*entities.Tag{
			{Name: "Lunch again", Color: "#000000", Slug: "lunch"},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, inserted)
	})
}
