package config

import (
	"Pantry-API/internal/api/handlers"
	"Pantry-API/internal/api/routes"
	"Pantry-API/internal/events"
	"Pantry-API/internal/middleware"
	"Pantry-API/internal/utils"
	"Pantry-API/internal/utils/mailing"
	"Pantry-API/internal/utils/storage"
	"Pantry-API/pkg/alert"
	"Pantry-API/pkg/fcm"
	"Pantry-API/pkg/ingredient"
	"Pantry-API/pkg/ingredientlog"
	"Pantry-API/pkg/jwt"
	"Pantry-API/pkg/llm"
	"Pantry-API/pkg/mealplan"
	"Pantry-API/pkg/member"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, *events.Bus, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, err
	}

	// setting up logging and limiter
	err = os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Seoul",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	dangerMailer := mailing.NewDangerAlertMailer()
	llmClient := llm.NewClient(llm.Config{
		BaseURL: utils.GetConfig("LLM_API_URL"),
		Logger:  zapLogger,
	})

	var pushSender ingredient.PushSender
	fcmClient, err := fcm.NewClient(context.Background(), utils.GetConfig("FIREBASE_CREDENTIALS"), zapLogger)
	if err != nil {
		zapLogger.Warn("fcm client unavailable, push notifications disabled", zap.Error(err))
	} else {
		pushSender = fcmClient
	}

	bus := events.NewBus(zapLogger, 2)

	// Repository
	memberRepository := member.NewMemberRepository(db)
	fcmTokenRepository := member.NewFCMTokenRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	ingredientLogRepository := ingredientlog.NewIngredientLogRepository(db)
	alertRepository := alert.NewAlertRepository(db)
	mealRepository := mealplan.NewMealRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	memberService := member.NewMemberService(db, memberRepository, fcmTokenRepository, jwtService, bus, zapLogger)
	ingredientLogService := ingredientlog.NewIngredientLogService(db, ingredientLogRepository, ingredientlog.NewIngredientLogLLM(llmClient), memberService, zapLogger)
	alertService := alert.NewAlertService(db, alertRepository, alert.NewAlertLLM(llmClient), dangerMailer, zapLogger)
	ingredientService := ingredient.NewIngredientService(
		db,
		ingredientRepository,
		ingredientLogService,
		memberService,
		fcmTokenRepository,
		alertService,
		ingredient.NewIngredientLLM(llmClient),
		bus,
		pushSender,
		s3,
		zapLogger,
	)
	mealPlanService := mealplan.NewMealPlanService(db, mealRepository, mealplan.NewMealLLM(llmClient), memberService, zapLogger)

	// Event subscriptions; handlers run after the publishing transaction
	// committed.
	bus.Subscribe(events.KindIngredientsCreated, func(ctx context.Context, e events.Event) {
		alertService.CreateAlertsByIngredients(ctx, e.Ingredients)
	})
	bus.Subscribe(events.KindMemberUpdated, func(ctx context.Context, e events.Event) {
		alertService.CreateAlertsByMember(ctx, e.MemberID)
	})
	bus.Subscribe(events.KindLogsRecorded, func(ctx context.Context, e events.Event) {
		ingredientLogService.SetEmbeddingVectors(ctx, e.LogIDs)
	})
	bus.Start()

	// Handler
	memberHandler := handlers.NewMemberHandler(memberService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	ingredientLogHandler := handlers.NewIngredientLogHandler(ingredientLogService)
	alertHandler := handlers.NewAlertHandler(alertService)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)

	// routes
	routesConfig := routes.Config{
		App:                  app,
		MemberHandler:        memberHandler,
		IngredientHandler:    ingredientHandler,
		IngredientLogHandler: ingredientLogHandler,
		AlertHandler:         alertHandler,
		MealPlanHandler:      mealPlanHandler,
		Middleware:           middlewares,
		JWTService:           jwtService,
	}
	routesConfig.Setup()
	return app, bus, nil
}
