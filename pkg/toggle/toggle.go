// Package toggle adds and removes the single-row relations between a user and
// a target: favorite recipes, shopping cart recipes and author subscriptions.
package toggle

import (
	"foodgram/domain"
	"foodgram/entities"
	"github.com/google/uuid"
)

type Kind int

const (
	KindFavorite Kind = iota + 1
	KindShoppingCart
	KindSubscription
)

type relation struct {
	name         string
	targetColumn string
	newRow       func(userID, targetID uuid.UUID) any
	errExists    error
	errMissing   error
}

var relations = map[Kind]relation{
	KindFavorite: {
		name:         "favorite",
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) any {
			return &entities.Favorite{UserID: userID, RecipeID: targetID}
		},
		errExists:  domain.ErrAlreadyFavorited,
		errMissing: domain.ErrNotFavorited,
	},
	KindShoppingCart: {
		name:         "shopping cart",
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) any {
			return &entities.ShoppingCart{UserID: userID, RecipeID: targetID}
		},
		errExists:  domain.ErrAlreadyInCart,
		errMissing: domain.ErrNotInCart,
	},
	KindSubscription: {
		name:         "subscription",
		targetColumn: "author_id",
		newRow: func(userID, targetID uuid.UUID) any {
			return &entities.Subscription{UserID: userID, AuthorID: targetID}
		},
		errExists:  domain.ErrAlreadySubscribed,
		errMissing: domain.ErrNotSubscribed,
	},
}

func (k Kind) String() string {
	if rel, ok := relations[k]; ok {
		return rel.name
	}
	return "unknown"
}

func lookup(kind Kind) (relation, bool) {
	rel, ok := relations[kind]
	return rel, ok
}
