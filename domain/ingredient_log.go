package domain

import (
	"time"
)

var (
	MessageSuccessGetIngredientLogs = "ingredient logs retrieved successfully"
	MessageFailedGetIngredientLogs  = "failed to retrieve ingredient logs"
)

type IngredientLogResponse struct {
	ID                  string    `json:"id"`
	IngredientName      string    `json:"ingredient_name"`
	IngredientImagePath string    `json:"ingredient_image_path"`
	MemberID            string    `json:"member_id"`
	MovementType        string    `json:"movement_type"`
	CreatedAt           time.Time `json:"created_at"`
}
