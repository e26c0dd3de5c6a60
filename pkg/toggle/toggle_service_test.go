package toggle

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/internal/utils/testdb"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddRemove(t *testing.T) {
	db := testdb.New(t)
	service := NewToggleService(NewToggleRepository(db))
	ctx := context.Background()

	userID := uuid.NewString()
	targetID := uuid.NewString()

	kinds := []struct {
		kind       Kind
		errExists  error
		errMissing error
	}{
		{KindFavorite, domain.ErrAlreadyFavorited, domain.ErrNotFavorited},
		{KindShoppingCart, domain.ErrAlreadyInCart, domain.ErrNotInCart},
		{KindSubscription, domain.ErrAlreadySubscribed, domain.ErrNotSubscribed},
	}

	for _, k := range kinds {
		t.Run(k.kind.String(), func(t *testing.T) {
			require.NoError(t, service.Add(ctx, k.kind, userID, targetID))

			err := service.Add(ctx, k.kind, userID, targetID)
			assert.ErrorIs(t, err, k.errExists)
			assert.Equal(t, domain.KindConflict, domain.KindOf(err))

			require.NoError(t, service.Remove(ctx, k.kind, userID, targetID))

			err = service.Remove(ctx, k.kind, userID, targetID)
			assert.ErrorIs(t, err, k.errMissing)
			assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
		})
	}
}

func TestKindsAreIndependent(t *testing.T) {
	db := testdb.New(t)
	service := NewToggleService(NewToggleRepository(db))
	ctx := context.Background()

	userID := uuid.NewString()
	recipeID := uuid.NewString()

	require.NoError(t, service.Add(ctx, KindFavorite, userID, recipeID))
	require.NoError(t, service.Add(ctx, KindShoppingCart, userID, recipeID))

	assert.ErrorIs(t, service.Remove(ctx, KindSubscription, userID, recipeID), domain.ErrNotSubscribed)

	// another user's favorite does not count
	assert.ErrorIs(t, service.Remove(ctx, KindFavorite, uuid.NewString(), recipeID), domain.ErrNotFavorited)
}

func TestRelated(t *testing.T) {
	db := testdb.New(t)
	service := NewToggleService(NewToggleRepository(db))
	ctx := context.Background()

	userID := uuid.NewString()
	liked, other := uuid.NewString(), uuid.NewString()
	require.NoError(t, service.Add(ctx, KindFavorite, userID, liked))

	related, err := service.Related(ctx, KindFavorite, userID, []string{liked, other})
	require.NoError(t, err)
	assert.True(t, related[liked])
	assert.False(t, related[other])

	anonymous, err := service.Related(ctx, KindFavorite, "", []string{liked})
	require.NoError(t, err)
	assert.Empty(t, anonymous)
}

func TestInvalidIDs(t *testing.T) {
	service := NewToggleService(&raceRepository{})
	err := service.Add(context.Background(), KindFavorite, "nope", uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

// raceRepository behaves as if another request inserted the row between the
// existence check and the insert.
type raceRepository struct {
	createErr error
}

func (r *raceRepository) Exists(context.Context, Kind, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *raceRepository) Create(context.Context, Kind, uuid.UUID, uuid.UUID) error {
	return r.createErr
}

func (r *raceRepository) Delete(context.Context, Kind, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *raceRepository) TargetIDs(context.Context, Kind, uuid.UUID, []uuid.UUID) (map[uuid.UUID]bool, error) {
	return nil, nil
}

func TestAdd_ConcurrentInsertIsConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("Translated Error", func(t *testing.T) {
		service := NewToggleService(&raceRepository{createErr: gorm.ErrDuplicatedKey})
		err := service.Add(ctx, KindShoppingCart, uuid.NewString(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrAlreadyInCart)
	})

	t.Run("Driver Error", func(t *testing.T) {
		service := NewToggleService(&raceRepository{
			createErr: errors.New("constraint failed: UNIQUE constraint failed: favorites.user_id, favorites.recipe_id (2067)"),
		})
		err := service.Add(ctx, KindFavorite, uuid.NewString(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
	})

	t.Run("Other Error", func(t *testing.T) {
		boom := errors.New("connection reset")
		service := NewToggleService(&raceRepository{createErr: boom})
		err := service.Add(ctx, KindFavorite, uuid.NewString(), uuid.NewString())
		assert.ErrorIs(t, err, boom)
	})
}

func TestUniqueIndexRejectsDuplicate(t *testing.T) {
	db := testdb.New(t)
	repo := NewToggleRepository(db)
	ctx := context.Background()

	userID, authorID := uuid.New(), uuid.New()
	require.NoError(t, repo.Create(ctx, KindSubscription, userID, authorID))

	err := repo.Create(ctx, KindSubscription, userID, authorID)
	require.Error(t, err)

	service := NewToggleService(repo)
	assert.ErrorIs(t, service.Add(ctx, KindSubscription, userID.String(), authorID.String()), domain.ErrAlreadySubscribed)
}
