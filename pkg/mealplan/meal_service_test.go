package mealplan

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/internal/events"
	"Pantry-API/pkg/member"
	"context"
	"errors"
	"fmt"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeJWTService struct{}

func (fakeJWTService) GenerateTokenDevice(memberID string, role string) string { return "token" }
func (fakeJWTService) ValidateTokenDevice(token string) (*jwtlib.Token, error) { return nil, nil }
func (fakeJWTService) GetMemberIDByToken(token string) (string, string, error) { return "", "", nil }

type fakeMealLLM struct {
	meals []PlannedMeal
	err   error
}

func (f *fakeMealLLM) GeneratePlan(ctx context.Context, memberID uuid.UUID, dates []string) ([]PlannedMeal, error) {
	return f.meals, f.err
}

func newTestService(t *testing.T) (*gorm.DB, member.MemberService, *fakeMealLLM, MealPlanService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Member{}, &entities.FCMToken{}, &entities.Meal{}))

	bus := events.NewBus(zap.NewNop(), 1)
	memberService := member.NewMemberService(db, member.NewMemberRepository(db), member.NewFCMTokenRepository(db), fakeJWTService{}, bus, zap.NewNop())

	mealLLM := &fakeMealLLM{}
	service := NewMealPlanService(db, NewMealRepository(db), mealLLM, memberService, zap.NewNop())
	return db, memberService, mealLLM, service
}

func loginMember(t *testing.T, memberService member.MemberService) uuid.UUID {
	t.Helper()
	memberID := uuid.New()
	_, err := memberService.Login(context.Background(), domain.LoginMemberRequest{MemberID: memberID.String()})
	require.NoError(t, err)
	return memberID
}

func TestGenerateMealsSavesPlan(t *testing.T) {
	db, memberService, mealLLM, service := newTestService(t)
	memberID := loginMember(t, memberService)

	mealLLM.meals = []PlannedMeal{
		{Date: "2026-08-31", ServingTime: entities.ServingBreakfast, Menu: []string{"porridge"}},
		{Date: "2026-08-31", ServingTime: entities.ServingLunch, Menu: []string{"soup", "rice"}},
		{Date: "2026-09-01", ServingTime: entities.ServingDinner, Menu: []string{"stew"}},
	}

	res, err := service.GenerateMeals(context.Background(), domain.GenerateMealsRequest{
		MemberID:  memberID.String(),
		StartDate: "2026-08-31",
		Days:      2,
	})
	require.NoError(t, err)
	require.Len(t, res, 3)

	var count int64
	require.NoError(t, db.Model(&entities.Meal{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestGenerateMealsReplacesExistingRange(t *testing.T) {
	db, memberService, mealLLM, service := newTestService(t)
	memberID := loginMember(t, memberService)

	mealLLM.meals = []PlannedMeal{
		{Date: "2026-08-31", ServingTime: entities.ServingBreakfast, Menu: []string{"porridge"}},
	}
	req := domain.GenerateMealsRequest{MemberID: memberID.String(), StartDate: "2026-08-31", Days: 1}

	_, err := service.GenerateMeals(context.Background(), req)
	require.NoError(t, err)
	_, err = service.GenerateMeals(context.Background(), req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.Meal{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGenerateMealsKeepsPartialPlan(t *testing.T) {
	db, memberService, mealLLM, service := newTestService(t)
	memberID := loginMember(t, memberService)

	mealLLM.meals = []PlannedMeal{
		{Date: "2026-08-31", ServingTime: entities.ServingBreakfast, Menu: []string{"porridge"}},
	}
	mealLLM.err = errors.New("llm down")

	res, err := service.GenerateMeals(context.Background(), domain.GenerateMealsRequest{
		MemberID:  memberID.String(),
		StartDate: "2026-08-31",
		Days:      7,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)

	var count int64
	require.NoError(t, db.Model(&entities.Meal{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGenerateMealsFailsWhenNothingGenerated(t *testing.T) {
	_, memberService, mealLLM, service := newTestService(t)
	memberID := loginMember(t, memberService)

	mealLLM.err = errors.New("llm down")

	_, err := service.GenerateMeals(context.Background(), domain.GenerateMealsRequest{
		MemberID:  memberID.String(),
		StartDate: "2026-08-31",
		Days:      3,
	})
	require.Error(t, err)
}

func TestGenerateMealsUnknownMember(t *testing.T) {
	_, _, _, service := newTestService(t)

	_, err := service.GenerateMeals(context.Background(), domain.GenerateMealsRequest{
		MemberID:  uuid.NewString(),
		StartDate: "2026-08-31",
		Days:      1,
	})
	require.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestGetMealsReturnsSingleDay(t *testing.T) {
	_, memberService, mealLLM, service := newTestService(t)
	memberID := loginMember(t, memberService)

	mealLLM.meals = []PlannedMeal{
		{Date: "2026-08-31", ServingTime: entities.ServingBreakfast, Menu: []string{"porridge"}},
		{Date: "2026-09-01", ServingTime: entities.ServingBreakfast, Menu: []string{"toast"}},
	}
	_, err := service.GenerateMeals(context.Background(), domain.GenerateMealsRequest{
		MemberID:  memberID.String(),
		StartDate: "2026-08-31",
		Days:      2,
	})
	require.NoError(t, err)

	meals, err := service.GetMeals(context.Background(), memberID.String(), "2026-08-31")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	require.Equal(t, []string{"porridge"}, meals[0].Menu)
}

func TestServeMealMarksServed(t *testing.T) {
	_, memberService, mealLLM, service := newTestService(t)
	memberID := loginMember(t, memberService)

	mealLLM.meals = []PlannedMeal{
		{Date: "2026-08-31", ServingTime: entities.ServingLunch, Menu: []string{"soup"}},
	}
	res, err := service.GenerateMeals(context.Background(), domain.GenerateMealsRequest{
		MemberID:  memberID.String(),
		StartDate: "2026-08-31",
		Days:      1,
	})
	require.NoError(t, err)

	require.NoError(t, service.ServeMeal(context.Background(), domain.ServeMealRequest{MealID: res[0].ID}))

	meals, err := service.GetMeals(context.Background(), memberID.String(), "2026-08-31")
	require.NoError(t, err)
	require.True(t, meals[0].IsServed)
}

func TestServeMealNotFound(t *testing.T) {
	_, _, _, service := newTestService(t)

	err := service.ServeMeal(context.Background(), domain.ServeMealRequest{MealID: uuid.NewString()})
	require.ErrorIs(t, err, domain.ErrMealNotFound)
}
