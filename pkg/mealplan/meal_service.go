package mealplan

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/pkg/member"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type (
	MealPlanService interface {
		GenerateMeals(ctx context.Context, req domain.GenerateMealsRequest) ([]domain.MealResponse, error)
		GetMeals(ctx context.Context, memberID, date string) ([]domain.MealResponse, error)
		ServeMeal(ctx context.Context, req domain.ServeMealRequest) error
	}

	mealPlanService struct {
		db             *gorm.DB
		mealRepository MealRepository
		mealLLM        MealLLM
		memberService  member.MemberService
		log            *zap.Logger
	}
)

func NewMealPlanService(
	db *gorm.DB,
	mealRepository MealRepository,
	mealLLM MealLLM,
	memberService member.MemberService,
	log *zap.Logger,
) MealPlanService {
	return &mealPlanService{
		db:             db,
		mealRepository: mealRepository,
		mealLLM:        mealLLM,
		memberService:  memberService,
		log:            log,
	}
}

// GenerateMeals plans meals for a date range and replaces whatever was planned
// there before. A partial plan (some batches failed) is kept and the failure
// logged; the operation fails only when nothing could be generated.
func (s *mealPlanService) GenerateMeals(ctx context.Context, req domain.GenerateMealsRequest) ([]domain.MealResponse, error) {
	memberID, err := s.memberService.CheckMemberExists(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, req.Days)
	for day := 0; day < req.Days; day++ {
		dates = append(dates, startDate.AddDate(0, 0, day).Format(dateLayout))
	}

	planned, llmErr := s.mealLLM.GeneratePlan(ctx, memberID, dates)
	if llmErr != nil {
		if len(planned) == 0 {
			return nil, llmErr
		}
		s.log.Warn("meal plan partially generated",
			zap.String("member_id", memberID.String()),
			zap.Int("planned", len(planned)),
			zap.Int("requested_days", req.Days),
			zap.Error(llmErr),
		)
	}

	meals := make([]*entities.Meal, 0, len(planned))
	for _, plan := range planned {
		servingDate, err := time.Parse(dateLayout, plan.Date)
		if err != nil {
			s.log.Warn("meal plan returned malformed date", zap.String("date", plan.Date))
			continue
		}

		mealID, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}

		meals = append(meals, &entities.Meal{
			ID:          mealID,
			MemberID:    memberID,
			ServingDate: servingDate,
			ServingTime: plan.ServingTime,
			Menu:        plan.Menu,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.mealRepository.WithTx(tx)

		rangeEnd := startDate.AddDate(0, 0, req.Days)
		if err := repo.DeleteByMemberAndRange(ctx, memberID, startDate, rangeEnd); err != nil {
			return err
		}

		return repo.SaveAll(ctx, meals)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MealResponse, 0, len(meals))
	for _, meal := range meals {
		responses = append(responses, toMealResponse(meal))
	}

	return responses, nil
}

func (s *mealPlanService) GetMeals(ctx context.Context, memberID, date string) ([]domain.MealResponse, error) {
	memberIDObj, err := s.memberService.CheckMemberExists(ctx, memberID)
	if err != nil {
		return nil, err
	}

	day := time.Now()
	if date != "" {
		day, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, err
		}
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	meals, err := s.mealRepository.FindByMemberAndRange(ctx, memberIDObj, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MealResponse, 0, len(meals))
	for _, meal := range meals {
		responses = append(responses, toMealResponse(meal))
	}

	return responses, nil
}

func (s *mealPlanService) ServeMeal(ctx context.Context, req domain.ServeMealRequest) error {
	mealID, err := uuid.Parse(req.MealID)
	if err != nil {
		return domain.ErrParseUUID
	}

	meal, err := s.mealRepository.FindByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}

	meal.IsServed = true
	return s.mealRepository.Save(ctx, meal)
}

func toMealResponse(meal *entities.Meal) domain.MealResponse {
	return domain.MealResponse{
		ID:          meal.ID.String(),
		MemberID:    meal.MemberID.String(),
		ServingDate: meal.ServingDate,
		ServingTime: meal.ServingTime,
		Menu:        meal.Menu,
		IsServed:    meal.IsServed,
	}
}
