package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerateMeals = "meal plan generated successfully"
	MessageSuccessGetMeals      = "meals retrieved successfully"
	MessageSuccessServeMeal     = "meal marked as served"

	MessageFailedGenerateMeals = "failed to generate meal plan"
	MessageFailedGetMeals      = "failed to retrieve meals"
	MessageFailedServeMeal     = "failed to mark meal as served"

	ErrMealNotFound = errors.New("meal not found")
)

type (
	GenerateMealsRequest struct {
		MemberID  string `json:"member_id" validate:"required,uuid"`
		StartDate string `json:"start_date" validate:"required"`
		Days      int    `json:"days" validate:"required,min=1,max=14"`
	}

	MealResponse struct {
		ID          string    `json:"id"`
		MemberID    string    `json:"member_id"`
		ServingDate time.Time `json:"serving_date"`
		ServingTime int       `json:"serving_time"`
		Menu        []string  `json:"menu"`
		IsServed    bool      `json:"is_served"`
	}

	ServeMealRequest struct {
		MealID string `json:"meal_id" validate:"required,uuid"`
	}
)
