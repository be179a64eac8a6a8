package alert

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/internal/events"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	// Notifier delivers an out-of-band warning for a dangerous outbound. It is
	// best-effort; failures are logged and never surfaced to the caller.
	Notifier interface {
		SendDangerAlert(memberName, ingredientName, comment string) error
	}

	AlertService interface {
		// CreateAlertsByIngredients evaluates freshly stocked ingredients
		// against every member profile. It runs from the event bus, after the
		// inbound transaction committed.
		CreateAlertsByIngredients(ctx context.Context, ingredients []events.IngredientSnapshot)
		// CreateAlertsByMember re-evaluates the stocked ingredients against a
		// single member whose profile just changed.
		CreateAlertsByMember(ctx context.Context, memberID uuid.UUID)
		// GetOutboundComment resolves the personalized comment for a member
		// taking out a single ingredient, reusing a stored alert when one
		// exists for the pair.
		GetOutboundComment(ctx context.Context, member *entities.Member, ingredient *entities.Ingredient) (domain.OutboundCommentResponse, error)
		GetAlertsByMember(ctx context.Context, memberID string) ([]domain.AlertResponse, error)
	}

	alertService struct {
		db              *gorm.DB
		alertRepository AlertRepository
		alertLLM        AlertLLM
		notifier        Notifier
		log             *zap.Logger
	}
)

func NewAlertService(
	db *gorm.DB,
	alertRepository AlertRepository,
	alertLLM AlertLLM,
	notifier Notifier,
	log *zap.Logger,
) AlertService {
	return &alertService{
		db:              db,
		alertRepository: alertRepository,
		alertLLM:        alertLLM,
		notifier:        notifier,
		log:             log,
	}
}

func (s *alertService) CreateAlertsByIngredients(ctx context.Context, ingredients []events.IngredientSnapshot) {
	for _, ingredient := range ingredients {
		riskyMembers, err := s.alertLLM.CheckRiskyMembers(ctx, ingredient.Name)
		if err != nil {
			// The client already retried; drop this ingredient and move on.
			s.log.Error("risky check by ingredient failed",
				zap.String("ingredient_id", ingredient.ID.String()),
				zap.String("ingredient_name", ingredient.Name),
				zap.Error(err),
			)
			continue
		}

		alerts := make([]*entities.Alert, 0, len(riskyMembers))
		for _, risky := range riskyMembers {
			memberID, err := uuid.Parse(risky.MemberID)
			if err != nil {
				s.log.Warn("risky check returned malformed member id",
					zap.String("member_id", risky.MemberID),
				)
				continue
			}

			alerts = append(alerts, &entities.Alert{
				MemberID:     memberID,
				IngredientID: ingredient.ID,
				Comment:      risky.Comment,
			})
		}

		if err := s.saveAlerts(ctx, alerts); err != nil {
			s.log.Error("saving alerts by ingredient failed",
				zap.String("ingredient_id", ingredient.ID.String()),
				zap.Error(err),
			)
		}
	}
}

func (s *alertService) CreateAlertsByMember(ctx context.Context, memberID uuid.UUID) {
	riskyIngredients, err := s.alertLLM.CheckRiskyIngredients(ctx, memberID)
	if err != nil {
		s.log.Error("risky check by member failed",
			zap.String("member_id", memberID.String()),
			zap.Error(err),
		)
		return
	}

	alerts := make([]*entities.Alert, 0, len(riskyIngredients))
	for _, risky := range riskyIngredients {
		ingredientID, err := uuid.Parse(risky.IngredientID)
		if err != nil {
			s.log.Warn("risky check returned malformed ingredient id",
				zap.String("ingredient_id", risky.IngredientID),
			)
			continue
		}

		alerts = append(alerts, &entities.Alert{
			MemberID:     memberID,
			IngredientID: ingredientID,
			Comment:      risky.Comment,
		})
	}

	if err := s.saveAlerts(ctx, alerts); err != nil {
		s.log.Error("saving alerts by member failed",
			zap.String("member_id", memberID.String()),
			zap.Error(err),
		)
	}
}

func (s *alertService) GetOutboundComment(ctx context.Context, member *entities.Member, ingredient *entities.Ingredient) (domain.OutboundCommentResponse, error) {
	existing, err := s.alertRepository.FindByKey(ctx, member.ID, ingredient.ID)
	if err == nil {
		return domain.OutboundCommentResponse{
			Comment:  existing.Comment,
			IsDanger: existing.IsDanger,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.OutboundCommentResponse{}, err
	}

	comment, err := s.alertLLM.CreateFoodComment(ctx, member.ID, ingredient.ID)
	if err != nil {
		return domain.OutboundCommentResponse{}, err
	}

	isDanger := IsDangerCategory(comment.Category)

	// Store the generated comment so the next outbound of the same pair skips
	// the LLM round trip.
	saveErr := s.saveAlerts(ctx, []*entities.Alert{{
		MemberID:     member.ID,
		IngredientID: ingredient.ID,
		Comment:      comment.Comment,
		IsDanger:     isDanger,
	}})
	if saveErr != nil {
		s.log.Warn("storing outbound comment failed",
			zap.String("member_id", member.ID.String()),
			zap.String("ingredient_id", ingredient.ID.String()),
			zap.Error(saveErr),
		)
	}

	if isDanger {
		s.notifyDanger(member.Name, ingredient.Name, comment.Comment)
	}

	return domain.OutboundCommentResponse{
		Comment:  comment.Comment,
		IsDanger: isDanger,
	}, nil
}

func (s *alertService) GetAlertsByMember(ctx context.Context, memberID string) ([]domain.AlertResponse, error) {
	memberIDObj, err := uuid.Parse(memberID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	alerts, err := s.alertRepository.FindByMemberID(ctx, memberIDObj)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, domain.AlertResponse{
			MemberID:     a.MemberID.String(),
			IngredientID: a.IngredientID.String(),
			Comment:      a.Comment,
			IsDanger:     a.IsDanger,
		})
	}

	return responses, nil
}

// saveAlerts writes the batch in its own transaction; duplicates are filtered
// inside the repository.
func (s *alertService) saveAlerts(ctx context.Context, alerts []*entities.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.alertRepository.WithTx(tx).SaveAllWithoutDuplicates(ctx, alerts)
		return err
	})
}

func (s *alertService) notifyDanger(memberName, ingredientName, comment string) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.SendDangerAlert(memberName, ingredientName, comment); err != nil {
		s.log.Warn("danger alert notification failed",
			zap.String("member_name", memberName),
			zap.String("ingredient_name", ingredientName),
			zap.Error(err),
		)
	}
}
