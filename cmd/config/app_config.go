package config

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/api/routes"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/recipe"
	"foodgram/pkg/tag"
	"foodgram/pkg/toggle"
	"foodgram/pkg/user"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const defaultLogFile = "./logs/app.log"

// Adapters are the outbound dependencies of the app; tests swap them for
// in-memory fakes.
type Adapters struct {
	S3     storage.AwsS3
	Mailer mailing.Mailer
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	// setting up access logging
	logFile := utils.GetConfig("LOG_FILE")
	if logFile == "" {
		logFile = defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	app := NewRouter(db, jwt.NewJWTService(utils.GetConfig("JWT_SECRET")), Adapters{
		S3:     storage.NewAwsS3(),
		Mailer: mailing.NewMailer(mailing.LoadMailConfig()),
	}, logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}), limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))
	return app, nil
}

// NewRouter wires repositories, services and handlers onto a fresh fiber app.
func NewRouter(db *gorm.DB, jwtService jwt.JWTService, adapters Adapters, middlewares ...fiber.Handler) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	for _, m := range middlewares {
		app.Use(m)
	}
	validator := utils.Validate

	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	toggleRepository := toggle.NewToggleRepository(db)

	// Service
	toggleService := toggle.NewToggleService(toggleRepository)
	userService := user.NewUserService(userRepository, toggleService, jwtService, adapters.S3)
	tagService := tag.NewTagService(tagRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		tagRepository,
		ingredientRepository,
		userRepository,
		toggleService,
		adapters.S3,
		adapters.Mailer,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	catalogHandler := handlers.NewCatalogHandler(tagService, ingredientService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		RecipeHandler:  recipeHandler,
		CatalogHandler: catalogHandler,
		Middleware:     middleware.NewMiddleware(),
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app
}
