package alert

import (
	"Pantry-API/pkg/llm"
	"context"
	"net/url"

	"github.com/google/uuid"
)

// Category values at or below dangerCategoryThreshold mark the food as risky
// enough to warn the household when it leaves stock.
const dangerCategoryThreshold = 2

type (
	RiskyMember struct {
		MemberID string `json:"member_id"`
		Comment  string `json:"comment"`
	}

	RiskyIngredient struct {
		IngredientID string `json:"ingredient_id"`
		Name         string `json:"name"`
		Comment      string `json:"comment"`
	}

	FoodComment struct {
		IngredientID string `json:"ingredient_id"`
		Name         string `json:"name"`
		Category     int    `json:"category"`
		CategoryName string `json:"category_name"`
		Comment      string `json:"comment"`
	}

	riskyCheckByIngredientResponse struct {
		Ingredient   string        `json:"ingredient"`
		RiskyMembers []RiskyMember `json:"risky_members"`
	}

	riskyCheckByMemberResponse struct {
		MemberID         string            `json:"member_id"`
		RiskyIngredients []RiskyIngredient `json:"risky_ingredients"`
	}

	AlertLLM interface {
		CheckRiskyMembers(ctx context.Context, ingredientName string) ([]RiskyMember, error)
		CheckRiskyIngredients(ctx context.Context, memberID uuid.UUID) ([]RiskyIngredient, error)
		CreateFoodComment(ctx context.Context, memberID, ingredientID uuid.UUID) (FoodComment, error)
	}

	alertLLM struct {
		client llm.Client
	}
)

func NewAlertLLM(client llm.Client) AlertLLM {
	return &alertLLM{client: client}
}

func (a *alertLLM) CheckRiskyMembers(ctx context.Context, ingredientName string) ([]RiskyMember, error) {
	query := url.Values{}
	query.Set("ingredient", ingredientName)

	var resp riskyCheckByIngredientResponse
	if err := a.client.Get(ctx, "/llm/food/risky-check", query, &resp); err != nil {
		return nil, err
	}

	return resp.RiskyMembers, nil
}

func (a *alertLLM) CheckRiskyIngredients(ctx context.Context, memberID uuid.UUID) ([]RiskyIngredient, error) {
	query := url.Values{}
	query.Set("member_id", memberID.String())

	var resp riskyCheckByMemberResponse
	if err := a.client.Get(ctx, "/llm/risky-check", query, &resp); err != nil {
		return nil, err
	}

	return resp.RiskyIngredients, nil
}

func (a *alertLLM) CreateFoodComment(ctx context.Context, memberID, ingredientID uuid.UUID) (FoodComment, error) {
	query := url.Values{}
	query.Set("member_id", memberID.String())
	query.Set("ingredient_id", ingredientID.String())

	var resp FoodComment
	if err := a.client.Get(ctx, "/llm/food/comment", query, &resp); err != nil {
		return FoodComment{}, err
	}

	return resp, nil
}

// IsDangerCategory reports whether a food category counts as dangerous for the
// member the comment was generated for.
func IsDangerCategory(category int) bool {
	return category <= dangerCategoryThreshold
}
