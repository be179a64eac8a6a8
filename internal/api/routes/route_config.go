package routes

import (
	"Pantry-API/internal/api/handlers"
	"Pantry-API/internal/middleware"
	"Pantry-API/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                  *fiber.App
	MemberHandler        handlers.MemberHandler
	IngredientHandler    handlers.IngredientHandler
	IngredientLogHandler handlers.IngredientLogHandler
	AlertHandler         handlers.AlertHandler
	MealPlanHandler      handlers.MealPlanHandler
	Middleware           middleware.Middleware
	JWTService           jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Members()
	c.Ingredients()
	c.IngredientLogs()
	c.Alerts()
	c.MealPlans()
	c.GuestRoute()
}

func (c *Config) Members() {
	members := c.App.Group("/api/v1/members")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		members.Post("/login", c.MemberHandler.Login)
		members.Get("", auth, c.MemberHandler.GetMembers)
		members.Get("/:id", auth, c.MemberHandler.GetMemberDetail)
		members.Patch("", auth, c.MemberHandler.UpdateMember)
		members.Delete("/:id", auth, c.MemberHandler.DeleteMember)
		members.Post("/fcm-token", auth, c.MemberHandler.RegisterFCMToken)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))
	{
		ingredients.Post("/inbound", c.IngredientHandler.InboundIngredients)
		ingredients.Post("/outbound", c.IngredientHandler.OutboundIngredients)
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Post("/image", c.IngredientHandler.UploadIngredientImage)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetail)
	}
}

func (c *Config) IngredientLogs() {
	logs := c.App.Group("/api/v1/ingredient-logs", c.Middleware.AuthMiddleware(c.JWTService))
	logs.Get("", c.IngredientLogHandler.GetIngredientLogs)
}

func (c *Config) Alerts() {
	alerts := c.App.Group("/api/v1/alerts", c.Middleware.AuthMiddleware(c.JWTService))
	alerts.Get("", c.AlertHandler.GetAlerts)
}

func (c *Config) MealPlans() {
	mealPlans := c.App.Group("/api/v1/meal-plans", c.Middleware.AuthMiddleware(c.JWTService))
	{
		mealPlans.Post("/generate", c.MealPlanHandler.GenerateMeals)
		mealPlans.Get("", c.MealPlanHandler.GetMeals)
		mealPlans.Post("/serve", c.MealPlanHandler.ServeMeal)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
