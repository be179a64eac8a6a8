package ingredient

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/internal/events"
	"Pantry-API/internal/utils/storage"
	"Pantry-API/pkg/alert"
	"Pantry-API/pkg/ingredientlog"
	"Pantry-API/pkg/member"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	// PushSender delivers a push notification to a set of device tokens.
	// Delivery is best-effort.
	PushSender interface {
		SendToTokens(ctx context.Context, tokens []string, title, body string) error
	}

	IngredientService interface {
		InboundIngredients(ctx context.Context, req domain.InboundIngredientsRequest) error
		// OutboundIngredients returns a comment only when exactly one
		// ingredient leaves stock; batch outbound returns nil.
		OutboundIngredients(ctx context.Context, req domain.OutboundIngredientsRequest) (*domain.OutboundCommentResponse, error)
		GetIngredients(ctx context.Context, memberID string, page, size int) ([]domain.IngredientResponse, int64, error)
		GetIngredientDetail(ctx context.Context, ingredientID string) (domain.IngredientResponse, error)
		UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest) (string, error)
	}

	ingredientService struct {
		db                   *gorm.DB
		ingredientRepository IngredientRepository
		ingredientLogService ingredientlog.IngredientLogService
		memberService        member.MemberService
		fcmTokenRepository   member.FCMTokenRepository
		alertService         alert.AlertService
		ingredientLLM        IngredientLLM
		bus                  *events.Bus
		pushSender           PushSender
		s3                   storage.AwsS3
		log                  *zap.Logger
	}
)

func NewIngredientService(
	db *gorm.DB,
	ingredientRepository IngredientRepository,
	ingredientLogService ingredientlog.IngredientLogService,
	memberService member.MemberService,
	fcmTokenRepository member.FCMTokenRepository,
	alertService alert.AlertService,
	ingredientLLM IngredientLLM,
	bus *events.Bus,
	pushSender PushSender,
	s3 storage.AwsS3,
	log *zap.Logger,
) IngredientService {
	return &ingredientService{
		db:                   db,
		ingredientRepository: ingredientRepository,
		ingredientLogService: ingredientLogService,
		memberService:        memberService,
		fcmTokenRepository:   fcmTokenRepository,
		alertService:         alertService,
		ingredientLLM:        ingredientLLM,
		bus:                  bus,
		pushSender:           pushSender,
		s3:                   s3,
		log:                  log,
	}
}

// InboundIngredients stocks a batch of ingredients for one member. Embedding
// happens before the transaction so an LLM failure leaves the database
// untouched; rows and their inbound logs commit together.
func (s *ingredientService) InboundIngredients(ctx context.Context, req domain.InboundIngredientsRequest) error {
	memberID, err := s.memberService.CheckMemberExists(ctx, req.MemberID)
	if err != nil {
		return err
	}

	now := time.Now()
	ingredients := make([]*entities.Ingredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		ingredientID, err := resolveIngredientID(item.IngredientID)
		if err != nil {
			return err
		}

		ingredients = append(ingredients, &entities.Ingredient{
			ID:           ingredientID,
			Name:         item.Name,
			ImagePath:    item.ImagePath,
			MemberID:     memberID,
			InboundAt:    now,
			ExpirationAt: item.ExpirationAt,
		})
	}

	vectors, err := s.ingredientLLM.CreateEmbeddings(ctx, ingredients)
	if err != nil {
		return err
	}
	for _, ingredient := range ingredients {
		if vector, ok := vectors[ingredient.ID.String()]; ok {
			ingredient.EmbeddingVector = vector
		}
	}

	var logIDs []uuid.UUID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ingredientRepository.WithTx(tx).SaveAll(ctx, ingredients); err != nil {
			return err
		}

		logIDs, err = s.ingredientLogService.RecordMovements(ctx, tx, ingredients, entities.MovementInbound)
		return err
	})
	if err != nil {
		return err
	}

	snapshots := make([]events.IngredientSnapshot, 0, len(ingredients))
	for _, ingredient := range ingredients {
		snapshots = append(snapshots, events.IngredientSnapshot{
			ID:   ingredient.ID,
			Name: ingredient.Name,
		})
	}

	s.bus.Publish(events.Event{Kind: events.KindIngredientsCreated, Ingredients: snapshots})
	s.bus.Publish(events.Event{Kind: events.KindLogsRecorded, LogIDs: logIDs})

	return nil
}

// OutboundIngredients takes ingredients out of stock. IDs that do not match a
// stocked row are dropped without error. For a single ingredient the member
// gets a personalized comment, reused from a stored alert when possible.
func (s *ingredientService) OutboundIngredients(ctx context.Context, req domain.OutboundIngredientsRequest) (*domain.OutboundCommentResponse, error) {
	memberID, err := s.memberService.CheckMemberExists(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	memberEntity, err := s.memberService.FindMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.IngredientIDs))
	for _, raw := range req.IngredientIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		ids = append(ids, id)
	}

	ingredients, err := s.ingredientRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, nil
	}

	var response *domain.OutboundCommentResponse
	if len(ingredients) == 1 {
		comment, err := s.alertService.GetOutboundComment(ctx, memberEntity, ingredients[0])
		if err != nil {
			return nil, err
		}
		response = &comment
	}

	var logIDs []uuid.UUID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ingredientRepository.WithTx(tx).DeleteAll(ctx, ingredients); err != nil {
			return err
		}

		logIDs, err = s.ingredientLogService.RecordMovements(ctx, tx, ingredients, entities.MovementOutbound)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{Kind: events.KindLogsRecorded, LogIDs: logIDs})

	if memberEntity.IsMonitored {
		s.pushOutboundNotification(ctx, memberEntity, ingredients)
	}

	return response, nil
}

func (s *ingredientService) GetIngredients(ctx context.Context, memberID string, page, size int) ([]domain.IngredientResponse, int64, error) {
	var filter *uuid.UUID
	if memberID != "" {
		id, err := uuid.Parse(memberID)
		if err != nil {
			return nil, 0, domain.ErrParseUUID
		}
		filter = &id
	}

	ingredients, count, err := s.ingredientRepository.FindPage(ctx, filter, page, size)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		responses = append(responses, toIngredientResponse(ingredient))
	}

	return responses, count, nil
}

func (s *ingredientService) GetIngredientDetail(ctx context.Context, ingredientID string) (domain.IngredientResponse, error) {
	id, err := uuid.Parse(ingredientID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	ingredient, err := s.ingredientRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest) (string, error) {
	id, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	if _, err := s.ingredientRepository.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrIngredientNotFound
		}
		return "", err
	}

	objectKey, err := s.s3.UploadFile(id.String(), req.Image, "ingredients", storage.AllowImage...)
	if err != nil {
		return "", err
	}
	imagePath := s.s3.GetPublicLinkKey(objectKey)

	if err := s.ingredientRepository.UpdateImagePath(ctx, id, imagePath); err != nil {
		return "", err
	}

	return imagePath, nil
}

func (s *ingredientService) pushOutboundNotification(ctx context.Context, memberEntity *entities.Member, ingredients []*entities.Ingredient) {
	if s.pushSender == nil {
		return
	}

	fcmTokens, err := s.fcmTokenRepository.FindAll(ctx)
	if err != nil {
		s.log.Warn("loading fcm tokens failed", zap.Error(err))
		return
	}
	if len(fcmTokens) == 0 {
		return
	}

	tokens := make([]string, 0, len(fcmTokens))
	for _, t := range fcmTokens {
		tokens = append(tokens, t.Token)
	}

	body := fmt.Sprintf("%s took out %s", memberEntity.Name, ingredients[0].Name)
	if len(ingredients) > 1 {
		body = fmt.Sprintf("%s took out %s and %d more", memberEntity.Name, ingredients[0].Name, len(ingredients)-1)
	}

	if err := s.pushSender.SendToTokens(ctx, tokens, "Ingredient outbound", body); err != nil {
		s.log.Warn("outbound push notification failed",
			zap.String("member_id", memberEntity.ID.String()),
			zap.Error(err),
		)
	}
}

func resolveIngredientID(raw string) (uuid.UUID, error) {
	if raw == "" {
		// Time-ordered IDs keep fresh stock clustered in the index.
		return uuid.NewV7()
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:           ingredient.ID.String(),
		Name:         ingredient.Name,
		ImagePath:    ingredient.ImagePath,
		MemberID:     ingredient.MemberID.String(),
		InboundAt:    ingredient.InboundAt,
		ExpirationAt: ingredient.ExpirationAt,
	}
}
