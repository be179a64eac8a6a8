package member

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/internal/events"
	"Pantry-API/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	MemberService interface {
		Login(ctx context.Context, req domain.LoginMemberRequest) (domain.LoginMemberResponse, error)
		GetMembers(ctx context.Context, page, size int) ([]domain.MemberResponse, int64, error)
		GetMemberDetail(ctx context.Context, memberID string) (domain.MemberResponse, error)
		UpdateMember(ctx context.Context, req domain.UpdateMemberRequest) error
		DeleteMember(ctx context.Context, memberID string) error
		RegisterFCMToken(ctx context.Context, req domain.RegisterFCMTokenRequest) error
		CheckMemberExists(ctx context.Context, memberID string) (uuid.UUID, error)
		FindMember(ctx context.Context, memberID uuid.UUID) (*entities.Member, error)
	}

	memberService struct {
		db                 *gorm.DB
		memberRepository   MemberRepository
		fcmTokenRepository FCMTokenRepository
		jwtService         jwt.JWTService
		bus                *events.Bus
		log                *zap.Logger
	}
)

func NewMemberService(
	db *gorm.DB,
	memberRepository MemberRepository,
	fcmTokenRepository FCMTokenRepository,
	jwtService jwt.JWTService,
	bus *events.Bus,
	log *zap.Logger,
) MemberService {
	return &memberService{
		db:                 db,
		memberRepository:   memberRepository,
		fcmTokenRepository: fcmTokenRepository,
		jwtService:         jwtService,
		bus:                bus,
		log:                log,
	}
}

// Login finds the member by recognition ID or registers a new one. New members
// get a sequential placeholder name until the profile is updated.
func (s *memberService) Login(ctx context.Context, req domain.LoginMemberRequest) (domain.LoginMemberResponse, error) {
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return domain.LoginMemberResponse{}, domain.ErrParseUUID
	}

	isNewMember := false
	var member *entities.Member

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.memberRepository.WithTx(tx)

		member, err = repo.FindByID(ctx, memberID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			isNewMember = true

			count, err := repo.CountMembers(ctx)
			if err != nil {
				return err
			}

			member = &entities.Member{
				ID:               memberID,
				Name:             fmt.Sprintf("New member %d", count+1),
				Age:              req.Age,
				ImagePath:        req.ImagePath,
				Color:            "normal",
				FontSize:         "medium",
				RecognitionTimes: 1,
				LastLoginAt:      time.Now(),
			}

			return repo.Save(ctx, member)
		}

		member.Age = req.Age
		if req.ImagePath != "" {
			member.ImagePath = req.ImagePath
		}
		member.RecognitionTimes++
		member.LastLoginAt = time.Now()

		return repo.Save(ctx, member)
	})
	if err != nil {
		return domain.LoginMemberResponse{}, err
	}

	token := s.jwtService.GenerateTokenDevice(member.ID.String(), domain.RoleDevice)

	return domain.LoginMemberResponse{
		IsNewMember: isNewMember,
		Token:       token,
		Member:      toMemberResponse(member),
	}, nil
}

func (s *memberService) GetMembers(ctx context.Context, page, size int) ([]domain.MemberResponse, int64, error) {
	members, count, err := s.memberRepository.FindMembers(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toMemberResponse(member))
	}

	return responses, count, nil
}

func (s *memberService) GetMemberDetail(ctx context.Context, memberID string) (domain.MemberResponse, error) {
	memberIDObj, err := uuid.Parse(memberID)
	if err != nil {
		return domain.MemberResponse{}, domain.ErrParseUUID
	}

	member, err := s.FindMember(ctx, memberIDObj)
	if err != nil {
		return domain.MemberResponse{}, err
	}

	return toMemberResponse(member), nil
}

// UpdateMember rewrites the profile and, after the transaction commits,
// publishes a member-updated event so alert generation can re-evaluate the
// stocked ingredients against the new preference sets.
func (s *memberService) UpdateMember(ctx context.Context, req domain.UpdateMemberRequest) error {
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return domain.ErrParseUUID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.memberRepository.WithTx(tx)

		member, err := repo.FindByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		if req.Name != "" {
			member.Name = req.Name
		}
		if req.Birth != nil {
			member.Birth = req.Birth
		}
		if req.Color != "" {
			member.Color = req.Color
		}
		if req.FontSize != "" {
			member.FontSize = req.FontSize
		}
		if req.PreferredFoods != nil {
			member.PreferredFoods = req.PreferredFoods
		}
		if req.DislikedFoods != nil {
			member.DislikedFoods = req.DislikedFoods
		}
		if req.Allergies != nil {
			member.Allergies = req.Allergies
		}
		if req.Diseases != nil {
			member.Diseases = req.Diseases
		}
		member.IsRegistered = true

		return repo.Save(ctx, member)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Event{
		Kind:     events.KindMemberUpdated,
		MemberID: memberID,
	})

	return nil
}

func (s *memberService) DeleteMember(ctx context.Context, memberID string) error {
	memberIDObj, err := uuid.Parse(memberID)
	if err != nil {
		return domain.ErrParseUUID
	}

	member, err := s.FindMember(ctx, memberIDObj)
	if err != nil {
		return err
	}

	return s.memberRepository.Delete(ctx, member)
}

func (s *memberService) RegisterFCMToken(ctx context.Context, req domain.RegisterFCMTokenRequest) error {
	memberID, err := s.CheckMemberExists(ctx, req.MemberID)
	if err != nil {
		return err
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return err
	}

	return s.fcmTokenRepository.Save(ctx, &entities.FCMToken{
		ID:       tokenID,
		MemberID: memberID,
		Token:    req.Token,
	})
}

func (s *memberService) CheckMemberExists(ctx context.Context, memberID string) (uuid.UUID, error) {
	memberIDObj, err := uuid.Parse(memberID)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}

	if _, err := s.FindMember(ctx, memberIDObj); err != nil {
		return uuid.Nil, err
	}

	return memberIDObj, nil
}

func (s *memberService) FindMember(ctx context.Context, memberID uuid.UUID) (*entities.Member, error) {
	member, err := s.memberRepository.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func toMemberResponse(member *entities.Member) domain.MemberResponse {
	return domain.MemberResponse{
		ID:             member.ID.String(),
		Name:           member.Name,
		Birth:          member.Birth,
		Age:            member.Age,
		ImagePath:      member.ImagePath,
		Color:          member.Color,
		FontSize:       member.FontSize,
		PreferredFoods: member.PreferredFoods,
		DislikedFoods:  member.DislikedFoods,
		Allergies:      member.Allergies,
		Diseases:       member.Diseases,
		IsMonitored:    member.IsMonitored,
		LastLoginAt:    member.LastLoginAt,
	}
}
