package domain

import (
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes         = "success get recipes"
	MessageSuccessGetRecipeDetail    = "success get recipe detail"
	MessageSuccessCreateRecipe       = "recipe created successfully"
	MessageSuccessUpdateRecipe       = "recipe updated successfully"
	MessageSuccessDeleteRecipe       = "recipe deleted successfully"
	MessageSuccessAddFavorite        = "recipe added to favorites"
	MessageSuccessRemoveFavorite     = "recipe removed from favorites"
	MessageSuccessAddShoppingCart    = "recipe added to shopping cart"
	MessageSuccessRemoveShoppingCart = "recipe removed from shopping cart"
	MessageSuccessEmailShoppingCart  = "shopping list sent"

	MessageFailedGetRecipes           = "failed to get recipes"
	MessageFailedGetRecipeDetail      = "failed to get recipe detail"
	MessageFailedCreateRecipe         = "failed to create recipe"
	MessageFailedUpdateRecipe         = "failed to update recipe"
	MessageFailedDeleteRecipe         = "failed to delete recipe"
	MessageFailedAddFavorite          = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite       = "failed to remove recipe from favorites"
	MessageFailedAddShoppingCart      = "failed to add recipe to shopping cart"
	MessageFailedRemoveShoppingCart   = "failed to remove recipe from shopping cart"
	MessageFailedDownloadShoppingCart = "failed to download shopping cart"
	MessageFailedEmailShoppingCart    = "failed to send shopping list"

	ErrRecipeNotFound           = NewNotFoundError("recipe not found")
	ErrUnauthorizedRecipeAccess = NewPermissionError("only the author can change this recipe")
	ErrInvalidCookingTime       = NewValidationError("cooking time must be at least one minute")
	ErrInvalidIngredientAmount  = NewValidationError("ingredient amount must be at least 1")
	ErrDuplicateIngredient      = NewValidationError("ingredients must not repeat")
	ErrNoIngredients            = NewValidationError("recipe must contain at least one ingredient")
	ErrDuplicateTag             = NewValidationError("tags must not repeat")
	ErrNoTags                   = NewValidationError("recipe must have at least one tag")
	ErrUnknownTag               = NewValidationError("tag does not exist")
	ErrUnknownIngredient        = NewValidationError("ingredient does not exist")
	ErrRecipeImageRequired      = NewValidationError("recipe image is required")
	ErrInvalidImageFormat       = NewValidationError("invalid image format")
	ErrRecipeNameTaken          = NewConflictError("you already have a recipe with this name")
	ErrInvalidAuthorFilter      = NewValidationError("invalid author id")

	ErrAlreadyFavorited = NewConflictError("recipe is already in favorites")
	ErrNotFavorited     = NewNotFoundError("recipe is not in favorites")
	ErrAlreadyInCart    = NewConflictError("recipe is already in shopping cart")
	ErrNotInCart        = NewNotFoundError("recipe is not in shopping cart")
)

const (
	ShoppingListFilename = "shopping_cart.txt"
	ShoppingListHeader   = "Your shopping list:"
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"min=1"`
	}

	CreateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
		Tags        []string                  `json:"tags" validate:"required,min=1,unique,dive,uuid"`
		Image       string                    `json:"image"`
		ImageFile   *multipart.FileHeader     `json:"-"`
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"min=1"`
	}

	// UpdateRecipeRequest replaces tags and ingredients wholesale; empty
	// scalar fields keep their current value.
	UpdateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
		Tags        []string                  `json:"tags" validate:"required,min=1,unique,dive,uuid"`
		Image       string                    `json:"image"`
		ImageFile   *multipart.FileHeader     `json:"-"`
		Name        string                    `json:"name" validate:"omitempty,max=200"`
		Text        string                    `json:"text"`
		CookingTime *int                      `json:"cooking_time" validate:"omitempty,min=1"`
	}

	RecipeFilter struct {
		Tags             []string
		AuthorID         string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               string             `json:"id"`
		Tags             []Tag              `json:"tags"`
		Author           User               `json:"author"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		Name             string             `json:"name"`
		Image            string             `json:"image"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		CreatedAt        time.Time          `json:"created_at"`
	}

	MiniRecipe struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe   `json:"recipes"`
		Pagination Pagination `json:"pagination"`
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int    `json:"total_amount"`
	}
)
