package handlers

import (
	"Pantry-API/domain"
	"Pantry-API/internal/api/presenters"
	"Pantry-API/pkg/member"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MemberHandler interface {
		Login(c *fiber.Ctx) error
		GetMembers(c *fiber.Ctx) error
		GetMemberDetail(c *fiber.Ctx) error
		UpdateMember(c *fiber.Ctx) error
		DeleteMember(c *fiber.Ctx) error
		RegisterFCMToken(c *fiber.Ctx) error
	}

	memberHandler struct {
		memberService member.MemberService
		validator     *validator.Validate
	}
)

func NewMemberHandler(memberService member.MemberService, validator *validator.Validate) MemberHandler {
	return &memberHandler{
		memberService: memberService,
		validator:     validator,
	}
}

func (h *memberHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginMemberRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLoginMember, err)
	}

	res, err := h.memberService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLoginMember, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLoginMember)
}

func (h *memberHandler) GetMembers(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}

	members, count, err := h.memberService.GetMembers(c.Context(), page, size)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMembers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"members": members,
		"page_info": domain.PageInfo{
			CurrentPage: page,
			Size:        size,
			Total:       count,
			HasNext:     int64(page*size) < count,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetMembers)
}

func (h *memberHandler) GetMemberDetail(c *fiber.Ctx) error {
	memberID := c.Params("id")

	res, err := h.memberService.GetMemberDetail(c.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMembers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMembers)
}

func (h *memberHandler) UpdateMember(c *fiber.Ctx) error {
	req := new(domain.UpdateMemberRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMember, err)
	}

	if err := h.memberService.UpdateMember(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMember, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateMember)
}

func (h *memberHandler) DeleteMember(c *fiber.Ctx) error {
	memberID := c.Params("id")

	if err := h.memberService.DeleteMember(c.Context(), memberID); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMember, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMember)
}

func (h *memberHandler) RegisterFCMToken(c *fiber.Ctx) error {
	req := new(domain.RegisterFCMTokenRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterToken, err)
	}

	if err := h.memberService.RegisterFCMToken(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterToken, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessRegisterToken)
}
