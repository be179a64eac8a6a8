package domain

import (
	"errors"
	"os"
)

const (
	RoleDevice = "device"
)

var (
	MessageFailedBodyRequest    = "failed to process body request"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID        = errors.New("failed to parse UUID")
	ErrLLMUnavailable   = errors.New("llm service unavailable")
	ErrTokenNotFound    = errors.New("failed to token not found")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrDeviceNotAllowed = errors.New("device not allowed")
)

// ErrorDetail is the not-found error envelope: status code, reason phrase,
// domain message and the request path that produced it.
type ErrorDetail struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

type PageInfo struct {
	CurrentPage int   `json:"current_page"`
	Size        int   `json:"size"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
}
