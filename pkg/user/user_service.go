package user

import (
	"context"
	"errors"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/jwt"
	"foodgram/pkg/toggle"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.User, error)
		GetUserByID(ctx context.Context, id, viewerID string) (domain.User, error)
		GetUsers(ctx context.Context, viewerID string, page, limit int) ([]domain.User, domain.Pagination, error)
		SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error
		DeleteUser(ctx context.Context, req domain.DeleteUserRequest, userID string) error
		GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.UserWithRecipes, domain.Pagination, error)
		Subscribe(ctx context.Context, authorID, userID string, recipesLimit int) (domain.UserWithRecipes, error)
		Unsubscribe(ctx context.Context, authorID, userID string) error
	}

	userService struct {
		userRepository UserRepository
		toggleService  toggle.ToggleService
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, toggleService toggle.ToggleService, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		toggleService:  toggleService,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func ToDomain(user *entities.User, isSubscribed bool) domain.User {
	return domain.User{
		Email:        user.Email,
		ID:           user.ID.String(),
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func (s *userService) findUser(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) present(ctx context.Context, users []*entities.User, viewerID string) ([]domain.User, error) {
	ids := make([]string, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID.String())
	}

	subscribed, err := s.toggleService.Related(ctx, toggle.KindSubscription, viewerID, ids)
	if err != nil {
		return nil, err
	}

	result := make([]domain.User, 0, len(users))
	for _, user := range users {
		result = append(result, ToDomain(user, subscribed[user.ID.String()]))
	}
	return result, nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, domain.ErrEmailTaken
	}

	exists, err = s.userRepository.CheckUsernameExists(ctx, req.Username)
	if err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return domain.User{}, domain.ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		Role:      domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if utils.IsUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return ToDomain(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, fmt.Errorf("get user: %w", err)
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	return domain.LoginResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return ToDomain(user, false), nil
}

func (s *userService) GetUserByID(ctx context.Context, id, viewerID string) (domain.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	result, err := s.present(ctx, []*entities.User{user}, viewerID)
	if err != nil {
		return domain.User{}, err
	}
	return result[0], nil
}

func (s *userService) GetUsers(ctx context.Context, viewerID string, page, limit int) ([]domain.User, domain.Pagination, error) {
	page, limit = domain.NormalizePage(page, limit)

	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("list users: %w", err)
	}

	result, err := s.present(ctx, users, viewerID)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return result, domain.NewPagination(page, limit, count), nil
}

func (s *userService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		return domain.ErrWrongPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepository.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, req domain.DeleteUserRequest, userID string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		return domain.ErrWrongPassword
	}

	recipes, err := s.userRepository.GetAuthorRecipes(ctx, user.ID, 0)
	if err != nil {
		return fmt.Errorf("list user recipes: %w", err)
	}

	if err := s.userRepository.DeleteUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	for _, recipe := range recipes {
		if recipe.ImageURL == "" {
			continue
		}
		if err := s.s3.DeleteFile(recipe.ImageURL); err != nil {
			log.Warnf("failed to delete recipe image %s: %v", recipe.ImageURL, err)
		}
	}
	return nil
}

func (s *userService) withRecipes(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.UserWithRecipes, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
	}

	counts, err := s.userRepository.CountAuthorRecipes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	result := make([]domain.UserWithRecipes, 0, len(authors))
	for _, author := range authors {
		recipes, err := s.userRepository.GetAuthorRecipes(ctx, author.ID, recipesLimit)
		if err != nil {
			return nil, fmt.Errorf("list author recipes: %w", err)
		}

		minis := make([]domain.MiniRecipe, 0, len(recipes))
		for _, recipe := range recipes {
			image := ""
			if recipe.ImageURL != "" {
				image = s.s3.GetPublicLinkKey(recipe.ImageURL)
			}
			minis = append(minis, domain.MiniRecipe{
				ID:          recipe.ID.String(),
				Name:        recipe.Name,
				Image:       image,
				CookingTime: recipe.CookingTime,
			})
		}

		result = append(result, domain.UserWithRecipes{
			User:         ToDomain(author, true),
			Recipes:      minis,
			RecipesCount: counts[author.ID],
		})
	}
	return result, nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.UserWithRecipes, domain.Pagination, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.Pagination{}, domain.ErrParseUUID
	}
	page, limit = domain.NormalizePage(page, limit)

	authors, count, err := s.userRepository.GetSubscriptions(ctx, userUUID, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("list subscriptions: %w", err)
	}

	result, err := s.withRecipes(ctx, authors, recipesLimit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return result, domain.NewPagination(page, limit, count), nil
}

func (s *userService) Subscribe(ctx context.Context, authorID, userID string, recipesLimit int) (domain.UserWithRecipes, error) {
	author, err := s.findUser(ctx, authorID)
	if err != nil {
		return domain.UserWithRecipes{}, err
	}
	if author.ID.String() == userID {
		return domain.UserWithRecipes{}, domain.ErrSelfSubscription
	}

	if err := s.toggleService.Add(ctx, toggle.KindSubscription, userID, authorID); err != nil {
		return domain.UserWithRecipes{}, err
	}

	result, err := s.withRecipes(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.UserWithRecipes{}, err
	}
	return result[0], nil
}

func (s *userService) Unsubscribe(ctx context.Context, authorID, userID string) error {
	if _, err := s.findUser(ctx, authorID); err != nil {
		return err
	}
	return s.toggleService.Remove(ctx, toggle.KindSubscription, userID, authorID)
}
