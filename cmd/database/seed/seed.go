// Package seed loads the tag and ingredient catalog from a YAML fixture.
package seed

import (
	"context"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"
	"log"
	"os"

	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

func LoadFixture(path string) (domain.CatalogFixture, error) {
	var fixture domain.CatalogFixture

	file, err := os.ReadFile(path)
	if err != nil {
		return fixture, fmt.Errorf("read fixture: %w", err)
	}
	if err := yaml.UnmarshalStrict(file, &fixture); err != nil {
		return fixture, fmt.Errorf("parse fixture: %w", err)
	}

	utils.InitValidator()
	if err := utils.Validate.Struct(fixture); err != nil {
		return fixture, fmt.Errorf("invalid fixture: %w", err)
	}
	return fixture, nil
}

// Seed inserts the fixture rows that are not present yet. Tags are matched by
// slug and ingredients by (name, measurement unit), so running it twice is
// harmless.
func Seed(ctx context.Context, db *gorm.DB, fixture domain.CatalogFixture) error {
	tags := make([]*entities.Tag, 0, len(fixture.Tags))
	for _, t := range fixture.Tags {
		tags = append(tags, &entities.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug})
	}

	ingredients := make([]*entities.Ingredient, 0, len(fixture.Ingredients))
	for _, i := range fixture.Ingredients {
		ingredients = append(ingredients, &entities.Ingredient{Name: i.Name, MeasurementUnit: i.MeasurementUnit})
	}

	tagCount, err := tag.NewTagRepository(db).CreateTagsIfMissing(ctx, tags)
	if err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}
	ingredientCount, err := ingredient.NewIngredientRepository(db).CreateIngredientsIfMissing(ctx, ingredients)
	if err != nil {
		return fmt.Errorf("seed ingredients: %w", err)
	}

	log.Printf("Seeded %d tags and %d ingredients", tagCount, ingredientCount)
	return nil
}

func SeedFile(ctx context.Context, db *gorm.DB, path string) error {
	fixture, err := LoadFixture(path)
	if err != nil {
		return err
	}
	return Seed(ctx, db, fixture)
}
