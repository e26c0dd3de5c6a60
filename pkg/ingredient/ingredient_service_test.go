package ingredient

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

func TestSearchIngredients(t *testing.T) {
	db := testdb.New(t)
	repo := NewIngredientRepository(db)
	service := NewIngredientService(repo)
	ctx := context.Background()

	_, err := repo.CreateIngredientsIfMissing(ctx, []*entities.Ingredient{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "Salmon", MeasurementUnit: "g"},
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "50% cream", MeasurementUnit: "ml"},
		{Name: "500 cream", MeasurementUnit: "ml"},
	})
	require.NoError(t, err)

	names := func(items []domain.Ingredient) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.Name)
		}
		return out
	}

	t.Run("Prefix Case Insensitive", func(t *testing.T) {
		items, err := service.SearchIngredients(ctx, "SAL")
		require.NoError(t, err)
		assert.Equal(t, []string{"Salmon", "salt"}, names(items))
	})

	t.Run("Prefix Only", func(t *testing.T) {
		items, err := service.SearchIngredients(ctx, "ugar")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Wildcards Are Literal", func(t *testing.T) {
		items, err := service.SearchIngredients(ctx, "50%")
		require.NoError(t, err)
		assert.Equal(t, []string{"50% cream"}, names(items))
	})

	t.Run("Empty Returns All", func(t *testing.T) {
		items, err := service.SearchIngredients(ctx, "")
		require.NoError(t, err)
		assert.Len(t, items, 6)
	})

	t.Run("Get By ID", func(t *testing.T) {
		items, err := service.SearchIngredients(ctx, "flour")
		require.NoError(t, err)
		require.Len(t, items, 1)

		item, err := service.GetIngredientByID(ctx, items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "g", item.MeasurementUnit)

		_, err = service.GetIngredientByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	})
}

func TestCreateIngredientsIfMissing_UniquePair(t *testing.T) {
	db := testdb.New(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	inserted, err := repo.CreateIngredientsIfMissing(ctx, []*entities.Ingredient{
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "milk", MeasurementUnit: "cup"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	inserted, err = repo.CreateIngredientsIfMissing(ctx, []*entities.Ingredient{
		{Name: "milk", MeasurementUnit: "ml"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, inserted)
}
