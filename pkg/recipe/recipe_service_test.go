package recipe

import (
	"context"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/fakes"
	"foodgram/internal/utils/testdb"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"
	"foodgram/pkg/toggle"
	"foodgram/pkg/user"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const pngImage = "data:image/png;base64,iVBORw0KGgo="

type fixture struct {
	db          *gorm.DB
	service     RecipeService
	toggles     toggle.ToggleService
	storage     *fakes.Storage
	mailer      *fakes.Mailer
	author      *entities.User
	reader      *entities.User
	tags        map[string]string
	ingredients map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)

	f := &fixture{
		db:          db,
		storage:     fakes.NewStorage(),
		mailer:      &fakes.Mailer{},
		author:      testdb.CreateUser(t, db, "author"),
		reader:      testdb.CreateUser(t, db, "reader"),
		tags:        map[string]string{},
		ingredients: map[string]string{},
	}
	f.toggles = toggle.NewToggleService(toggle.NewToggleRepository(db))
	f.service = NewRecipeService(
		NewRecipeRepository(db),
		tag.NewTagRepository(db),
		ingredient.NewIngredientRepository(db),
		user.NewUserRepository(db),
		f.toggles,
		f.storage,
		f.mailer,
	)

	for _, slug := range []string{"breakfast", "lunch", "dinner"} {
		row := &entities.Tag{Name: slug, Color: "#E26C2D", Slug: slug}
		require.NoError(t, db.Create(row).Error)
		f.tags[slug] = row.ID.String()
	}
	for _, name := range []string{"flour", "sugar", "milk"} {
		unit := "g"
		if name == "milk" {
			unit = "ml"
		}
		row := &entities.Ingredient{Name: name, MeasurementUnit: unit}
		require.NoError(t, db.Create(row).Error)
		f.ingredients[name] = row.ID.String()
	}
	return f
}

func (f *fixture) request(name string, tags []string, amounts map[string]int) domain.CreateRecipeRequest {
	req := domain.CreateRecipeRequest{
		Name:        name,
		Text:        "mix and bake",
		CookingTime: 30,
		Image:       pngImage,
	}
	for _, slug := range tags {
		req.Tags = append(req.Tags, f.tags[slug])
	}
	for ingredientName, amount := range amounts {
		req.Ingredients = append(req.Ingredients, domain.RecipeIngredientRequest{ID: f.ingredients[ingredientName], Amount: amount})
	}
	return req
}

func (f *fixture) create(t *testing.T, author *entities.User, name string, tags []string, amounts map[string]int) domain.Recipe {
	t.Helper()
	recipe, err := f.service.CreateRecipe(context.Background(), f.request(name, tags, amounts), author.ID.String())
	require.NoError(t, err)
	return recipe
}

func amountsOf(recipe domain.Recipe) map[string]int {
	out := map[string]int{}
	for _, item := range recipe.Ingredients {
		out[item.Name] = item.Amount
	}
	return out
}

func slugsOf(recipe domain.Recipe) []string {
	out := []string{}
	for _, t := range recipe.Tags {
		out = append(out, t.Slug)
	}
	return out
}

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)

	recipe := f.create(t, f.author, "Pancakes", []string{"lunch", "breakfast"}, map[string]int{"flour": 100, "milk": 200})

	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Equal(t, 30, recipe.CookingTime)
	assert.Equal(t, []string{"breakfast", "lunch"}, slugsOf(recipe))
	assert.Equal(t, map[string]int{"flour": 100, "milk": 200}, amountsOf(recipe))
	assert.Equal(t, f.author.ID.String(), recipe.Author.ID)
	assert.False(t, recipe.Author.IsSubscribed)
	assert.False(t, recipe.IsFavorited)

	key := "recipes/" + recipe.ID + ".png"
	assert.True(t, f.storage.Has(key))
	assert.Equal(t, fakes.LinkPrefix+key, recipe.Image)
}

func TestCreateRecipe_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	authorID := f.author.ID.String()

	t.Run("Cooking Time", func(t *testing.T) {
		req := f.request("Zero", []string{"lunch"}, map[string]int{"flour": 1})
		req.CookingTime = 0
		_, err := f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrInvalidCookingTime)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))

		req.CookingTime = 1
		_, err = f.service.CreateRecipe(ctx, req, authorID)
		assert.NoError(t, err)
	})

	t.Run("Duplicate Ingredient", func(t *testing.T) {
		req := f.request("Twice", []string{"lunch"}, map[string]int{"flour": 1})
		req.Ingredients = append(req.Ingredients, domain.RecipeIngredientRequest{ID: f.ingredients["flour"], Amount: 5})
		_, err := f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrDuplicateIngredient)
	})

	t.Run("Ingredient Amount", func(t *testing.T) {
		req := f.request("Nothing", []string{"lunch"}, map[string]int{"flour": 0})
		_, err := f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrInvalidIngredientAmount)
	})

	t.Run("Missing Components", func(t *testing.T) {
		_, err := f.service.CreateRecipe(ctx, f.request("No Tags", nil, map[string]int{"flour": 1}), authorID)
		assert.ErrorIs(t, err, domain.ErrNoTags)

		_, err = f.service.CreateRecipe(ctx, f.request("No Ingredients", []string{"lunch"}, nil), authorID)
		assert.ErrorIs(t, err, domain.ErrNoIngredients)
	})

	t.Run("Duplicate Tag", func(t *testing.T) {
		_, err := f.service.CreateRecipe(ctx, f.request("Tags", []string{"lunch", "lunch"}, map[string]int{"flour": 1}), authorID)
		assert.ErrorIs(t, err, domain.ErrDuplicateTag)
	})

	t.Run("Unknown References", func(t *testing.T) {
		req := f.request("Unknown Tag", []string{"lunch"}, map[string]int{"flour": 1})
		req.Tags = append(req.Tags, uuid.NewString())
		_, err := f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrUnknownTag)

		req = f.request("Unknown Ingredient", []string{"lunch"}, map[string]int{"flour": 1})
		req.Ingredients = append(req.Ingredients, domain.RecipeIngredientRequest{ID: uuid.NewString(), Amount: 1})
		_, err = f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrUnknownIngredient)
	})

	t.Run("Image", func(t *testing.T) {
		req := f.request("No Image", []string{"lunch"}, map[string]int{"flour": 1})
		req.Image = ""
		_, err := f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrRecipeImageRequired)

		req.Image = "not an image"
		_, err = f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)

		req.Image = "data:image/bmp;base64,Qk0="
		_, err = f.service.CreateRecipe(ctx, req, authorID)
		assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
	})

	t.Run("Name Taken", func(t *testing.T) {
		f.create(t, f.author, "Soup", []string{"dinner"}, map[string]int{"milk": 300})

		_, err := f.service.CreateRecipe(ctx, f.request("Soup", []string{"lunch"}, map[string]int{"flour": 1}), authorID)
		assert.ErrorIs(t, err, domain.ErrRecipeNameTaken)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))

		// another author may reuse the name
		f.create(t, f.reader, "Soup", []string{"dinner"}, map[string]int{"milk": 300})
	})
}

func TestUpdateRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.author, "Bread", []string{"breakfast"}, map[string]int{"flour": 100, "sugar": 20})
	oldKey := "recipes/" + created.ID + ".png"

	t.Run("Replaces Ingredients And Tags", func(t *testing.T) {
		req := domain.UpdateRecipeRequest{
			Tags:        []string{f.tags["dinner"]},
			Ingredients: []domain.RecipeIngredientRequest{{ID: f.ingredients["milk"], Amount: 250}},
		}
		updated, err := f.service.UpdateRecipe(ctx, created.ID, req, f.author.ID.String(), domain.RoleUser)
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"milk": 250}, amountsOf(updated))
		assert.Equal(t, []string{"dinner"}, slugsOf(updated))
		assert.Equal(t, "Bread", updated.Name)
		assert.Equal(t, "mix and bake", updated.Text)
		assert.Equal(t, 30, updated.CookingTime)

		var rows int64
		require.NoError(t, f.db.Model(&entities.IngredientRecipe{}).Where("recipe_id = ?", created.ID).Count(&rows).Error)
		assert.EqualValues(t, 1, rows)
	})

	t.Run("Scalars And Image", func(t *testing.T) {
		cookingTime := 5
		req := domain.UpdateRecipeRequest{
			Tags:        []string{f.tags["lunch"]},
			Ingredients: []domain.RecipeIngredientRequest{{ID: f.ingredients["flour"], Amount: 1}},
			Name:        "Flatbread",
			CookingTime: &cookingTime,
			Image:       "data:image/jpeg;base64,/9j/4AAQ",
		}
		updated, err := f.service.UpdateRecipe(ctx, created.ID, req, f.author.ID.String(), domain.RoleUser)
		require.NoError(t, err)

		assert.Equal(t, "Flatbread", updated.Name)
		assert.Equal(t, 5, updated.CookingTime)
		assert.Equal(t, fakes.LinkPrefix+"recipes/"+created.ID+".jpeg", updated.Image)
		assert.False(t, f.storage.Has(oldKey))
	})

	t.Run("Invalid Cooking Time", func(t *testing.T) {
		zero := 0
		req := domain.UpdateRecipeRequest{
			Tags:        []string{f.tags["lunch"]},
			Ingredients: []domain.RecipeIngredientRequest{{ID: f.ingredients["flour"], Amount: 1}},
			CookingTime: &zero,
		}
		_, err := f.service.UpdateRecipe(ctx, created.ID, req, f.author.ID.String(), domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrInvalidCookingTime)
	})

	t.Run("Permissions", func(t *testing.T) {
		req := domain.UpdateRecipeRequest{
			Tags:        []string{f.tags["lunch"]},
			Ingredients: []domain.RecipeIngredientRequest{{ID: f.ingredients["sugar"], Amount: 3}},
		}
		_, err := f.service.UpdateRecipe(ctx, created.ID, req, f.reader.ID.String(), domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
		assert.Equal(t, domain.KindPermission, domain.KindOf(err))

		updated, err := f.service.UpdateRecipe(ctx, created.ID, req, f.reader.ID.String(), domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"sugar": 3}, amountsOf(updated))
	})

	t.Run("Missing Recipe", func(t *testing.T) {
		_, err := f.service.UpdateRecipe(ctx, uuid.NewString(), domain.UpdateRecipeRequest{}, f.author.ID.String(), domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})
}

func TestDeleteRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	recipe := f.create(t, f.author, "Stew", []string{"dinner", "lunch"}, map[string]int{"milk": 100})
	_, err := f.service.AddFavorite(ctx, recipe.ID, f.reader.ID.String())
	require.NoError(t, err)
	_, err = f.service.AddToShoppingCart(ctx, recipe.ID, f.reader.ID.String())
	require.NoError(t, err)

	err = f.service.DeleteRecipe(ctx, recipe.ID, f.reader.ID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	require.NoError(t, f.service.DeleteRecipe(ctx, recipe.ID, f.author.ID.String(), domain.RoleUser))

	for _, model := range []any{&entities.RecipeTag{}, &entities.IngredientRecipe{}, &entities.Favorite{}, &entities.ShoppingCart{}} {
		var count int64
		require.NoError(t, f.db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.False(t, f.storage.Has("recipes/"+recipe.ID+".png"))

	_, err = f.service.GetRecipeByID(ctx, recipe.ID, "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	err = f.service.DeleteRecipe(ctx, recipe.ID, f.author.ID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavoriteAndCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	readerID := f.reader.ID.String()

	recipe := f.create(t, f.author, "Salad", []string{"lunch"}, map[string]int{"sugar": 1})

	mini, err := f.service.AddFavorite(ctx, recipe.ID, readerID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, mini.ID)
	assert.Equal(t, recipe.Image, mini.Image)

	_, err = f.service.AddFavorite(ctx, recipe.ID, readerID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	detail, err := f.service.GetRecipeByID(ctx, recipe.ID, readerID)
	require.NoError(t, err)
	assert.True(t, detail.IsFavorited)
	assert.False(t, detail.IsInShoppingCart)

	anonymous, err := f.service.GetRecipeByID(ctx, recipe.ID, "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)

	require.NoError(t, f.service.RemoveFavorite(ctx, recipe.ID, readerID))
	err = f.service.RemoveFavorite(ctx, recipe.ID, readerID)
	assert.ErrorIs(t, err, domain.ErrNotFavorited)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.service.AddToShoppingCart(ctx, recipe.ID, readerID)
	require.NoError(t, err)
	_, err = f.service.AddToShoppingCart(ctx, recipe.ID, readerID)
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)
	require.NoError(t, f.service.RemoveFromShoppingCart(ctx, recipe.ID, readerID))
	assert.ErrorIs(t, f.service.RemoveFromShoppingCart(ctx, recipe.ID, readerID), domain.ErrNotInCart)

	_, err = f.service.AddFavorite(ctx, uuid.NewString(), readerID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	assert.ErrorIs(t, f.service.RemoveFavorite(ctx, "nope", readerID), domain.ErrRecipeNotFound)
}

func TestAuthorSubscriptionFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	recipe := f.create(t, f.author, "Tea", []string{"breakfast"}, map[string]int{"milk": 50})
	require.NoError(t, f.toggles.Add(ctx, toggle.KindSubscription, f.reader.ID.String(), f.author.ID.String()))

	detail, err := f.service.GetRecipeByID(ctx, recipe.ID, f.reader.ID.String())
	require.NoError(t, err)
	assert.True(t, detail.Author.IsSubscribed)

	detail, err = f.service.GetRecipeByID(ctx, recipe.ID, f.author.ID.String())
	require.NoError(t, err)
	assert.False(t, detail.Author.IsSubscribed)
}

func TestGetRecipes_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	readerID := f.reader.ID.String()

	both := f.create(t, f.author, "Both", []string{"breakfast", "lunch"}, map[string]int{"flour": 1})
	lunch := f.create(t, f.author, "Lunch", []string{"lunch"}, map[string]int{"flour": 1})
	dinner := f.create(t, f.reader, "Dinner", []string{"dinner"}, map[string]int{"flour": 1})

	_, err := f.service.AddFavorite(ctx, both.ID, readerID)
	require.NoError(t, err)
	_, err = f.service.AddFavorite(ctx, dinner.ID, readerID)
	require.NoError(t, err)
	_, err = f.service.AddToShoppingCart(ctx, lunch.ID, readerID)
	require.NoError(t, err)

	ids := func(res domain.RecipeListResponse) []string {
		out := []string{}
		for _, r := range res.Recipes {
			out = append(out, r.ID)
		}
		return out
	}

	cases := []struct {
		name   string
		filter domain.RecipeFilter
		userID string
		want   []string
	}{
		{"No Filter", domain.RecipeFilter{}, "", []string{both.ID, lunch.ID, dinner.ID}},
		{"Tag Union Without Duplicates", domain.RecipeFilter{Tags: []string{"breakfast", "lunch"}}, "", []string{both.ID, lunch.ID}},
		{"Author", domain.RecipeFilter{AuthorID: f.reader.ID.String()}, "", []string{dinner.ID}},
		{"Favorited", domain.RecipeFilter{IsFavorited: true}, readerID, []string{both.ID, dinner.ID}},
		{"Favorited With Tag", domain.RecipeFilter{IsFavorited: true, Tags: []string{"lunch"}}, readerID, []string{both.ID}},
		{"Favorited With Author", domain.RecipeFilter{IsFavorited: true, AuthorID: f.author.ID.String()}, readerID, []string{both.ID}},
		{"Shopping Cart", domain.RecipeFilter{IsInShoppingCart: true}, readerID, []string{lunch.ID}},
		{"Favorited And Cart", domain.RecipeFilter{IsFavorited: true, IsInShoppingCart: true}, readerID, []string{}},
		{"Anonymous Favorited", domain.RecipeFilter{IsFavorited: true}, "", []string{}},
		{"Anonymous Cart", domain.RecipeFilter{IsInShoppingCart: true}, "", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := f.service.GetRecipes(ctx, tc.filter, tc.userID, 1, 10)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.want, ids(res))
			assert.EqualValues(t, len(tc.want), res.Pagination.Total)
		})
	}

	t.Run("Flags", func(t *testing.T) {
		res, err := f.service.GetRecipes(ctx, domain.RecipeFilter{Tags: []string{"lunch"}}, readerID, 1, 10)
		require.NoError(t, err)
		for _, r := range res.Recipes {
			assert.Equal(t, r.ID == both.ID, r.IsFavorited, r.Name)
			assert.Equal(t, r.ID == lunch.ID, r.IsInShoppingCart, r.Name)
		}
	})

	t.Run("Invalid Author", func(t *testing.T) {
		_, err := f.service.GetRecipes(ctx, domain.RecipeFilter{AuthorID: "abc"}, "", 1, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidAuthorFilter)
	})

	t.Run("Pagination", func(t *testing.T) {
		res, err := f.service.GetRecipes(ctx, domain.RecipeFilter{}, "", 2, 2)
		require.NoError(t, err)
		assert.Len(t, res.Recipes, 1)
		assert.Equal(t, domain.Pagination{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, res.Pagination)

		res, err = f.service.GetRecipes(ctx, domain.RecipeFilter{}, "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Pagination.Page)
		assert.Equal(t, domain.DefaultPageLimit, res.Pagination.Limit)
	})
}

func TestShoppingList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	readerID := f.reader.ID.String()

	text, err := f.service.GetShoppingList(ctx, readerID)
	require.NoError(t, err)
	assert.Equal(t, "Your shopping list:\n\n", text)

	first := f.create(t, f.author, "Cake", []string{"lunch"}, map[string]int{"flour": 100, "sugar": 20})
	second := f.create(t, f.author, "Bun", []string{"lunch"}, map[string]int{"flour": 50})
	f.create(t, f.author, "Latte", []string{"lunch"}, map[string]int{"milk": 200})

	for _, id := range []string{first.ID, second.ID} {
		_, err := f.service.AddToShoppingCart(ctx, id, readerID)
		require.NoError(t, err)
	}

	text, err = f.service.GetShoppingList(ctx, readerID)
	require.NoError(t, err)
	assert.Equal(t, "Your shopping list:\n\nflour (g): 150\nsugar (g): 20", text)

	t.Run("Email", func(t *testing.T) {
		require.NoError(t, f.service.EmailShoppingList(ctx, readerID))
		require.Len(t, f.mailer.Sent, 1)
		assert.Equal(t, f.reader.Email, f.mailer.Sent[0].To)
		assert.Equal(t, text, f.mailer.Sent[0].Body)
	})
}
