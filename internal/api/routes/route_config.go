package routes

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/middleware"
	"foodgram/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	CatalogHandler handlers.CatalogHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Recipe()
	c.Catalog()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/token/login", c.UserHandler.Login)
	}
}

func (c *Config) User() {
	required := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	// static paths go before /:id
	{
		user.Post("/", c.UserHandler.Register)
		user.Get("/", optional, c.UserHandler.GetUsers)
		user.Get("/me", required, c.UserHandler.Me)
		user.Delete("/me", required, c.UserHandler.DeleteMe)
		user.Post("/set_password", required, c.UserHandler.SetPassword)
		user.Get("/subscriptions", required, c.UserHandler.GetSubscriptions)
		user.Get("/:id", optional, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", required, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", required, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Recipe() {
	required := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipe := c.App.Group("/api/recipes")
	{
		recipe.Get("/", optional, c.RecipeHandler.GetRecipes)
		recipe.Post("/", required, c.RecipeHandler.CreateRecipe)
		recipe.Get("/download_shopping_cart", required, c.RecipeHandler.DownloadShoppingCart)
		recipe.Post("/email_shopping_cart", required, c.RecipeHandler.EmailShoppingCart)
		recipe.Get("/:id", optional, c.RecipeHandler.GetRecipe)
		recipe.Patch("/:id", required, c.RecipeHandler.UpdateRecipe)
		recipe.Delete("/:id", required, c.RecipeHandler.DeleteRecipe)
		recipe.Post("/:id/favorite", required, c.RecipeHandler.AddFavorite)
		recipe.Delete("/:id/favorite", required, c.RecipeHandler.RemoveFavorite)
		recipe.Post("/:id/shopping_cart", required, c.RecipeHandler.AddToShoppingCart)
		recipe.Delete("/:id/shopping_cart", required, c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	{
		tags.Get("/", c.CatalogHandler.GetTags)
		tags.Get("/:id", c.CatalogHandler.GetTag)
	}

	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("/", c.CatalogHandler.GetIngredients)
		ingredients.Get("/:id", c.CatalogHandler.GetIngredient)
	}
}
