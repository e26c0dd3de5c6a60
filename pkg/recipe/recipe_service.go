package recipe

import (
	"context"
	"errors"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"
	"foodgram/pkg/toggle"
	"foodgram/pkg/user"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"mime/multipart"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) (domain.RecipeListResponse, error)
		GetRecipeByID(ctx context.Context, recipeID, userID string) (domain.Recipe, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID, role string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID, userID, role string) error
		AddFavorite(ctx context.Context, recipeID, userID string) (domain.MiniRecipe, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.MiniRecipe, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error
		GetShoppingList(ctx context.Context, userID string) (string, error)
		EmailShoppingList(ctx context.Context, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		toggleService        toggle.ToggleService
		s3                   storage.AwsS3
		mailer               mailing.Mailer
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	toggleService toggle.ToggleService,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		toggleService:        toggleService,
		s3:                   s3,
		mailer:               mailer,
	}
}

func (s *recipeService) imageLink(key string) string {
	if key == "" {
		return ""
	}
	return s.s3.GetPublicLinkKey(key)
}

func (s *recipeService) toMini(recipe *entities.Recipe) domain.MiniRecipe {
	return domain.MiniRecipe{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       s.imageLink(recipe.ImageURL),
		CookingTime: recipe.CookingTime,
	}
}

// present converts recipes for the acting user, resolving the per-user flags
// with one query per relation.
func (s *recipeService) present(ctx context.Context, recipes []*entities.Recipe, userID string) ([]domain.Recipe, error) {
	recipeIDs := make([]string, 0, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID.String())
		authorIDs = append(authorIDs, recipe.AuthorID.String())
	}

	favorited, err := s.toggleService.Related(ctx, toggle.KindFavorite, userID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.toggleService.Related(ctx, toggle.KindShoppingCart, userID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.toggleService.Related(ctx, toggle.KindSubscription, userID, authorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		tags := make([]domain.Tag, 0, len(recipe.Tags))
		for _, t := range recipe.Tags {
			tags = append(tags, tag.ToDomain(t))
		}

		ingredients := make([]domain.RecipeIngredient, 0, len(recipe.IngredientRecipes))
		for _, item := range recipe.IngredientRecipes {
			if item.Ingredient == nil {
				continue
			}
			ingredients = append(ingredients, domain.RecipeIngredient{
				ID:              item.IngredientID.String(),
				Name:            item.Ingredient.Name,
				MeasurementUnit: item.Ingredient.MeasurementUnit,
				Amount:          item.Amount,
			})
		}

		var author domain.User
		if recipe.Author != nil {
			author = user.ToDomain(recipe.Author, subscribed[recipe.AuthorID.String()])
		}

		id := recipe.ID.String()
		result = append(result, domain.Recipe{
			ID:               id,
			Tags:             tags,
			Author:           author,
			Ingredients:      ingredients,
			IsFavorited:      favorited[id],
			IsInShoppingCart: inCart[id],
			Name:             recipe.Name,
			Image:            s.imageLink(recipe.ImageURL),
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
			CreatedAt:        recipe.CreatedAt,
		})
	}
	return result, nil
}

func (s *recipeService) presentOne(ctx context.Context, recipe *entities.Recipe, userID string) (domain.Recipe, error) {
	result, err := s.present(ctx, []*entities.Recipe{recipe}, userID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return result[0], nil
}

func (s *recipeService) findRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) (domain.RecipeListResponse, error) {
	page, limit = domain.NormalizePage(page, limit)

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID, page, limit)
	if err != nil {
		if domain.KindOf(err) != domain.KindInternal {
			return domain.RecipeListResponse{}, err
		}
		return domain.RecipeListResponse{}, fmt.Errorf("list recipes: %w", err)
	}

	result, err := s.present(ctx, recipes, userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	return domain.RecipeListResponse{
		Recipes:    result,
		Pagination: domain.NewPagination(page, limit, count),
	}, nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, recipeID, userID string) (domain.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return s.presentOne(ctx, recipe, userID)
}

// resolveComponents checks the tag and ingredient lists of a create or update
// request and turns them into rows for the join tables.
func (s *recipeService) resolveComponents(ctx context.Context, tagIDs []string, items []domain.RecipeIngredientRequest) ([]uuid.UUID, []*entities.IngredientRecipe, error) {
	if len(tagIDs) == 0 {
		return nil, nil, domain.ErrNoTags
	}
	if len(items) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}

	tags := make([]uuid.UUID, 0, len(tagIDs))
	seenTags := make(map[uuid.UUID]bool, len(tagIDs))
	for _, id := range tagIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, nil, domain.ErrUnknownTag
		}
		if seenTags[parsed] {
			return nil, nil, domain.ErrDuplicateTag
		}
		seenTags[parsed] = true
		tags = append(tags, parsed)
	}

	rows := make([]*entities.IngredientRecipe, 0, len(items))
	ingredientIDs := make([]uuid.UUID, 0, len(items))
	seenIngredients := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		parsed, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, nil, domain.ErrUnknownIngredient
		}
		if seenIngredients[parsed] {
			return nil, nil, domain.ErrDuplicateIngredient
		}
		if item.Amount < 1 {
			return nil, nil, domain.ErrInvalidIngredientAmount
		}
		seenIngredients[parsed] = true
		ingredientIDs = append(ingredientIDs, parsed)
		rows = append(rows, &entities.IngredientRecipe{IngredientID: parsed, Amount: item.Amount})
	}

	foundTags, err := s.tagRepository.GetTagsByIDs(ctx, tags)
	if err != nil {
		return nil, nil, fmt.Errorf("load tags: %w", err)
	}
	if len(foundTags) != len(tags) {
		return nil, nil, domain.ErrUnknownTag
	}

	foundIngredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load ingredients: %w", err)
	}
	if len(foundIngredients) != len(ingredientIDs) {
		return nil, nil, domain.ErrUnknownIngredient
	}

	return tags, rows, nil
}

func (s *recipeService) checkName(ctx context.Context, authorID uuid.UUID, name string, exceptID uuid.UUID) error {
	taken, err := s.recipeRepository.NameTaken(ctx, authorID, name, exceptID)
	if err != nil {
		return fmt.Errorf("check recipe name: %w", err)
	}
	if taken {
		return domain.ErrRecipeNameTaken
	}
	return nil
}

// uploadImage stores the image of a request under recipes/<id>.<ext> and
// returns the object key. It returns "" when the request carries no image.
func (s *recipeService) uploadImage(recipeID uuid.UUID, dataURI string, file *multipart.FileHeader) (string, error) {
	var (
		key string
		err error
	)

	switch {
	case file != nil:
		key, err = s.s3.UploadFile(recipeID.String(), file, imageFolder, storage.AllowImage...)
	case dataURI != "":
		ext, data, decodeErr := decodeImage(dataURI)
		if decodeErr != nil {
			return "", decodeErr
		}
		key, err = s.s3.UploadBytes(recipeID.String()+ext, data, imageFolder, storage.AllowImage...)
	default:
		return "", nil
	}

	if err != nil {
		if errors.Is(err, storage.ErrExtensionNotAllowed) {
			return "", domain.ErrInvalidImageFormat
		}
		return "", fmt.Errorf("upload recipe image: %w", err)
	}
	return key, nil
}

func (s *recipeService) removeImage(key string) {
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(key); err != nil {
		log.Warnf("failed to delete recipe image %s: %v", key, err)
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	if req.CookingTime < 1 {
		return domain.Recipe{}, domain.ErrInvalidCookingTime
	}
	if req.Image == "" && req.ImageFile == nil {
		return domain.Recipe{}, domain.ErrRecipeImageRequired
	}

	tagIDs, items, err := s.resolveComponents(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := s.checkName(ctx, authorID, req.Name, uuid.Nil); err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	key, err := s.uploadImage(recipe.ID, req.Image, req.ImageFile)
	if err != nil {
		return domain.Recipe{}, err
	}
	recipe.ImageURL = key

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagIDs, items); err != nil {
		s.removeImage(key)
		if utils.IsUniqueViolation(err) {
			return domain.Recipe{}, domain.ErrRecipeNameTaken
		}
		return domain.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}

	return s.GetRecipeByID(ctx, recipe.ID.String(), userID)
}

func canModify(recipe *entities.Recipe, userID, role string) bool {
	return role == domain.RoleAdmin || recipe.AuthorID.String() == userID
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID, role string) (domain.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	if !canModify(recipe, userID, role) {
		return domain.Recipe{}, domain.ErrUnauthorizedRecipeAccess
	}

	if req.CookingTime != nil {
		if *req.CookingTime < 1 {
			return domain.Recipe{}, domain.ErrInvalidCookingTime
		}
		recipe.CookingTime = *req.CookingTime
	}

	tagIDs, items, err := s.resolveComponents(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}

	if req.Name != "" && req.Name != recipe.Name {
		if err := s.checkName(ctx, recipe.AuthorID, req.Name, recipe.ID); err != nil {
			return domain.Recipe{}, err
		}
		recipe.Name = req.Name
	}
	if req.Text != "" {
		recipe.Text = req.Text
	}

	oldKey := recipe.ImageURL
	newKey, err := s.uploadImage(recipe.ID, req.Image, req.ImageFile)
	if err != nil {
		return domain.Recipe{}, err
	}
	if newKey != "" {
		recipe.ImageURL = newKey
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tagIDs, items); err != nil {
		if newKey != "" && newKey != oldKey {
			s.removeImage(newKey)
		}
		if utils.IsUniqueViolation(err) {
			return domain.Recipe{}, domain.ErrRecipeNameTaken
		}
		return domain.Recipe{}, fmt.Errorf("update recipe: %w", err)
	}

	// same extension overwrites the object in place
	if newKey != "" && newKey != oldKey {
		s.removeImage(oldKey)
	}

	return s.GetRecipeByID(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID, role string) error {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if !canModify(recipe, userID, role) {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	s.removeImage(recipe.ImageURL)
	return nil
}

func (s *recipeService) addRelation(ctx context.Context, kind toggle.Kind, recipeID, userID string) (domain.MiniRecipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.MiniRecipe{}, err
	}
	if err := s.toggleService.Add(ctx, kind, userID, recipeID); err != nil {
		return domain.MiniRecipe{}, err
	}
	return s.toMini(recipe), nil
}

func (s *recipeService) removeRelation(ctx context.Context, kind toggle.Kind, recipeID, userID string) error {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ErrRecipeNotFound
	}
	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("check recipe: %w", err)
	}
	if !exists {
		return domain.ErrRecipeNotFound
	}
	return s.toggleService.Remove(ctx, kind, userID, recipeID)
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.MiniRecipe, error) {
	return s.addRelation(ctx, toggle.KindFavorite, recipeID, userID)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	return s.removeRelation(ctx, toggle.KindFavorite, recipeID, userID)
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.MiniRecipe, error) {
	return s.addRelation(ctx, toggle.KindShoppingCart, recipeID, userID)
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error {
	return s.removeRelation(ctx, toggle.KindShoppingCart, recipeID, userID)
}

func (s *recipeService) GetShoppingList(ctx context.Context, userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", domain.ErrParseUUID
	}

	items, err := s.recipeRepository.GetShoppingList(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("aggregate shopping list: %w", err)
	}
	return RenderShoppingList(items), nil
}

func (s *recipeService) EmailShoppingList(ctx context.Context, userID string) error {
	content, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return err
	}

	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.mailer.SendMail(account.Email, "Foodgram shopping list", content); err != nil {
		return fmt.Errorf("send shopping list: %w", err)
	}
	return nil
}
