package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessInboundIngredients  = "ingredients inbounded successfully"
	MessageSuccessOutboundIngredients = "ingredients outbounded successfully"
	MessageSuccessGetIngredients      = "ingredients retrieved successfully"
	MessageSuccessUploadImage         = "ingredient image uploaded successfully"

	MessageFailedInboundIngredients  = "failed to inbound ingredients"
	MessageFailedOutboundIngredients = "failed to outbound ingredients"
	MessageFailedGetIngredients      = "failed to retrieve ingredients"
	MessageFailedUploadImage         = "failed to upload ingredient image"

	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	InboundIngredientRequest struct {
		Name         string     `json:"name" validate:"required"`
		ImagePath    string     `json:"image_path" validate:"required"`
		IngredientID string     `json:"ingredient_id" validate:"omitempty,uuid"`
		ExpirationAt *time.Time `json:"expiration_at"`
	}

	InboundIngredientsRequest struct {
		MemberID    string                     `json:"member_id" validate:"required,uuid"`
		Ingredients []InboundIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	OutboundIngredientsRequest struct {
		MemberID      string   `json:"member_id" validate:"required,uuid"`
		IngredientIDs []string `json:"ingredient_ids" validate:"required,min=1,dive,uuid"`
	}

	// OutboundCommentResponse is returned only for single-item outbound; batch
	// outbound returns an empty body.
	OutboundCommentResponse struct {
		Comment  string `json:"comment"`
		IsDanger bool   `json:"is_danger"`
	}

	IngredientResponse struct {
		ID           string     `json:"id"`
		Name         string     `json:"name"`
		ImagePath    string     `json:"image_path"`
		MemberID     string     `json:"member_id"`
		InboundAt    time.Time  `json:"inbound_at"`
		ExpirationAt *time.Time `json:"expiration_at,omitempty"`
	}

	UploadIngredientImageRequest struct {
		IngredientID string                `json:"ingredient_id" form:"ingredient_id" validate:"required,uuid"`
		Image        *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
