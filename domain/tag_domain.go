package domain

var (
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetTag         = "success get tag"
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient"

	MessageFailedGetTags        = "failed to get tags"
	MessageFailedGetTag         = "failed to get tag"
	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient"

	ErrTagNotFound        = NewNotFoundError("tag not found")
	ErrIngredientNotFound = NewNotFoundError("ingredient not found")
)

type (
	Tag struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	Ingredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	// CatalogFixture is the seed file layout for tags and ingredients.
	CatalogFixture struct {
		Tags        []TagFixture        `yaml:"tags" validate:"dive"`
		Ingredients []IngredientFixture `yaml:"ingredients" validate:"dive"`
	}

	TagFixture struct {
		Name  string `yaml:"name" validate:"required,max=200"`
		Color string `yaml:"color" validate:"required,hexcolor"`
		Slug  string `yaml:"slug" validate:"required,max=200,slug"`
	}

	IngredientFixture struct {
		Name            string `yaml:"name" validate:"required,max=200"`
		MeasurementUnit string `yaml:"measurement_unit" validate:"required,max=200"`
	}
)
