package mealplan

import (
	"Pantry-API/pkg/llm"
	"context"

	"github.com/google/uuid"
)

// planBatchSize caps how many days a single meal-plan request carries. Longer
// horizons are split and the results accumulated.
const planBatchSize = 3

type (
	PlannedMeal struct {
		Date        string   `json:"date"`
		ServingTime int      `json:"serving_time"`
		Menu        []string `json:"menu"`
	}

	mealPlanRequest struct {
		MemberID string   `json:"member_id"`
		Dates    []string `json:"dates"`
	}

	mealPlanResponse struct {
		Meals []PlannedMeal `json:"meals"`
	}

	MealLLM interface {
		// GeneratePlan requests meals for the given dates in batches. On a
		// batch failure it returns the meals accumulated from the batches
		// that succeeded, together with the error.
		GeneratePlan(ctx context.Context, memberID uuid.UUID, dates []string) ([]PlannedMeal, error)
	}

	mealLLM struct {
		client llm.Client
	}
)

func NewMealLLM(client llm.Client) MealLLM {
	return &mealLLM{client: client}
}

func (l *mealLLM) GeneratePlan(ctx context.Context, memberID uuid.UUID, dates []string) ([]PlannedMeal, error) {
	var meals []PlannedMeal

	for start := 0; start < len(dates); start += planBatchSize {
		end := start + planBatchSize
		if end > len(dates) {
			end = len(dates)
		}

		req := mealPlanRequest{
			MemberID: memberID.String(),
			Dates:    dates[start:end],
		}

		var resp mealPlanResponse
		if err := l.client.Post(ctx, "/llm/meal-plan", req, &resp); err != nil {
			return meals, err
		}

		meals = append(meals, resp.Meals...)
	}

	return meals, nil
}
