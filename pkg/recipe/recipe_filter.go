package recipe

import (
	"foodgram/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// filterScope narrows the recipe list by the query parameters. Every
// condition composes with the others; userID is empty for anonymous callers,
// who have no favorites and an empty cart.
func filterScope(filter domain.RecipeFilter, userID string) (func(*gorm.DB) *gorm.DB, error) {
	var authorID uuid.UUID
	if filter.AuthorID != "" {
		parsed, err := uuid.Parse(filter.AuthorID)
		if err != nil {
			return nil, domain.ErrInvalidAuthorFilter
		}
		authorID = parsed
	}

	userUUID, err := uuid.Parse(userID)
	anonymous := err != nil

	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true})

		if len(filter.Tags) > 0 {
			db = db.Where("recipes.id IN (?)", sub.
				Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.Tags))
		}

		if authorID != uuid.Nil {
			db = db.Where("recipes.author_id = ?", authorID)
		}

		if (filter.IsFavorited || filter.IsInShoppingCart) && anonymous {
			return db.Where("1 = 0")
		}

		if filter.IsFavorited {
			db = db.Where("recipes.id IN (?)", sub.
				Table("favorites").
				Select("favorites.recipe_id").
				Where("favorites.user_id = ?", userUUID))
		}

		if filter.IsInShoppingCart {
			db = db.Where("recipes.id IN (?)", sub.
				Table("shopping_carts").
				Select("shopping_carts.recipe_id").
				Where("shopping_carts.user_id = ?", userUUID))
		}

		return db
	}, nil
}
