package handlers

import (
	"Pantry-API/domain"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubIngredientService struct {
	inboundErr  error
	outboundRes *domain.OutboundCommentResponse
	outboundErr error
}

func (s *stubIngredientService) InboundIngredients(ctx context.Context, req domain.InboundIngredientsRequest) error {
	return s.inboundErr
}

func (s *stubIngredientService) OutboundIngredients(ctx context.Context, req domain.OutboundIngredientsRequest) (*domain.OutboundCommentResponse, error) {
	return s.outboundRes, s.outboundErr
}

func (s *stubIngredientService) GetIngredients(ctx context.Context, memberID string, page, size int) ([]domain.IngredientResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubIngredientService) GetIngredientDetail(ctx context.Context, ingredientID string) (domain.IngredientResponse, error) {
	return domain.IngredientResponse{}, nil
}

func (s *stubIngredientService) UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest) (string, error) {
	return "", nil
}

func newIngredientTestApp(service *stubIngredientService) *fiber.App {
	app := fiber.New()
	handler := NewIngredientHandler(service, validator.New())
	app.Post("/inbound", handler.InboundIngredients)
	app.Post("/outbound", handler.OutboundIngredients)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func inboundBody() string {
	return fmt.Sprintf(
		`{"member_id":%q,"ingredients":[{"name":"milk","image_path":"milk.png"}]}`,
		uuid.NewString(),
	)
}

func outboundBody() string {
	return fmt.Sprintf(
		`{"member_id":%q,"ingredient_ids":[%q]}`,
		uuid.NewString(), uuid.NewString(),
	)
}

func TestInboundGatewayOutageIsNotClientFault(t *testing.T) {
	service := &stubIngredientService{
		inboundErr: fmt.Errorf("%w: llm api error: 502 Bad Gateway", domain.ErrLLMUnavailable),
	}
	app := newIngredientTestApp(service)

	resp := postJSON(t, app, "/inbound", inboundBody())
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestInboundErrorStatusMapping(t *testing.T) {
	service := &stubIngredientService{inboundErr: errors.New("boom")}
	app := newIngredientTestApp(service)

	resp := postJSON(t, app, "/inbound", inboundBody())
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	service.inboundErr = domain.ErrMemberNotFound
	resp = postJSON(t, app, "/inbound", inboundBody())
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestOutboundGatewayOutageIsNotClientFault(t *testing.T) {
	service := &stubIngredientService{
		outboundErr: fmt.Errorf("%w: llm api error: 503 Service Unavailable", domain.ErrLLMUnavailable),
	}
	app := newIngredientTestApp(service)

	resp := postJSON(t, app, "/outbound", outboundBody())
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
