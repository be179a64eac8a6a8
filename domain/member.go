package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLoginMember   = "member logged in successfully"
	MessageSuccessGetMembers    = "members retrieved successfully"
	MessageSuccessUpdateMember  = "member updated successfully"
	MessageSuccessDeleteMember  = "member deleted successfully"
	MessageSuccessRegisterToken = "device token registered successfully"

	MessageFailedLoginMember   = "failed to login member"
	MessageFailedGetMembers    = "failed to retrieve members"
	MessageFailedUpdateMember  = "failed to update member"
	MessageFailedDeleteMember  = "failed to delete member"
	MessageFailedRegisterToken = "failed to register device token"

	ErrMemberNotFound = errors.New("member not found")
)

type (
	LoginMemberRequest struct {
		MemberID  string `json:"member_id" validate:"required,uuid"`
		Age       int    `json:"age" validate:"omitempty,min=0"`
		ImagePath string `json:"image_path"`
	}

	LoginMemberResponse struct {
		IsNewMember bool           `json:"is_new_member"`
		Token       string         `json:"token"`
		Member      MemberResponse `json:"member"`
	}

	UpdateMemberRequest struct {
		MemberID       string     `json:"member_id" validate:"required,uuid"`
		Name           string     `json:"name"`
		Birth          *time.Time `json:"birth"`
		Color          string     `json:"color"`
		FontSize       string     `json:"font_size"`
		PreferredFoods []string   `json:"preferred_foods"`
		DislikedFoods  []string   `json:"disliked_foods"`
		Allergies      []string   `json:"allergies"`
		Diseases       []string   `json:"diseases"`
	}

	RegisterFCMTokenRequest struct {
		MemberID string `json:"member_id" validate:"required,uuid"`
		Token    string `json:"token" validate:"required"`
	}

	MemberResponse struct {
		ID             string     `json:"member_id"`
		Name           string     `json:"name"`
		Birth          *time.Time `json:"birth,omitempty"`
		Age            int        `json:"age"`
		ImagePath      string     `json:"image_path,omitempty"`
		Color          string     `json:"color"`
		FontSize       string     `json:"font_size"`
		PreferredFoods []string   `json:"preferred_foods"`
		DislikedFoods  []string   `json:"disliked_foods"`
		Allergies      []string   `json:"allergies"`
		Diseases       []string   `json:"diseases"`
		IsMonitored    bool       `json:"is_monitored"`
		LastLoginAt    time.Time  `json:"last_login_at"`
	}
)
