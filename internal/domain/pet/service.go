package pet

import (
	"context"
	"strings"
	"time"

	"Petfolio/internal/domain/advisor"
	"Petfolio/internal/domain/shared"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/logger"
	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
)

const (
	feedCost         = 10
	feedHungerRelief = 30
	feedXP           = 5
	playHappiness    = 20
	playXP           = 10

	digestHappinessBonus   = 10
	digestHappinessPenalty = 10
	digestXP               = 15
)

// Analyzer is the slice of the advisor the pet simulation consumes.
type Analyzer interface {
	Analyze(ctx context.Context, transactions []advisor.Transaction, monthlyBudget *float64) (*advisor.AnalysisResult, error)
}

type Service struct {
	Repository  Repository
	Advisor     Analyzer
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, analyzer Analyzer, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		Advisor:     analyzer,
		UserChecker: userChecker,
	}
}

// GetOrCreate returns the user's pet with decay applied, adopting a default
// one on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID ulid.ULID) (*Pet, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	entity, err := s.Repository.GetByUserId(ctx, userID)
	if err != nil {
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrPetNotFound.Code {
			return nil, err
		}
		entity = s.adopt(userID)
		if err := s.Repository.Create(ctx, entity); err != nil {
			return nil, err
		}
		logger.Info().Str("user_id", userID.String()).Str("pet_id", entity.Id.String()).Msg("pet adopted")
		return entity, nil
	}

	entity.ApplyDecay(time.Now())
	return entity, nil
}

func (s *Service) adopt(userID ulid.ULID) *Pet {
	now := time.Now()
	return &Pet{
		Id:           pkg.GenerateULIDObject(),
		UserId:       userID,
		Name:         "Momo",
		Species:      SpeciesCat,
		Level:        1,
		XP:           0,
		Coins:        50,
		Hunger:       20,
		Happiness:    80,
		LastFedAt:    now,
		LastPlayedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *Service) Rename(ctx context.Context, userID ulid.ULID, name string) (*Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "name cannot be empty")
	}
	if len(name) > 100 {
		return nil, appErrors.NewValidationError("name", "must be at most 100 characters")
	}

	entity, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	entity.Name = name
	entity.UpdatedAt = time.Now()
	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Feed spends coins to lower hunger and grants a little XP.
func (s *Service) Feed(ctx context.Context, userID ulid.ULID) (*Pet, error) {
	entity, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if entity.Coins < feedCost {
		return nil, appErrors.NewValidationError("coins", "not enough coins to feed the pet")
	}

	// Charge first. The conditional update closes the race between two
	// concurrent feeds spending the same coins.
	if err := s.Repository.UpdateCoinsAtomic(ctx, entity.Id, -feedCost); err != nil {
		return nil, err
	}

	now := time.Now()
	entity.Coins -= feedCost
	entity.Hunger = clamp(entity.Hunger - feedHungerRelief)
	entity.LastFedAt = now
	entity.UpdatedAt = now
	if leveled := entity.AddXP(feedXP); leveled {
		logger.Info().Str("pet_id", entity.Id.String()).Int("level", entity.Level).Msg("pet leveled up")
	}

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Play raises happiness and grants XP. Free, unlike feeding.
func (s *Service) Play(ctx context.Context, userID ulid.ULID) (*Pet, error) {
	entity, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entity.Happiness = clamp(entity.Happiness + playHappiness)
	entity.LastPlayedAt = now
	entity.UpdatedAt = now
	if leveled := entity.AddXP(playXP); leveled {
		logger.Info().Str("pet_id", entity.Id.String()).Int("level", entity.Level).Msg("pet leveled up")
	}

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// GrantReward credits quest rewards. Implements shared.PetRewarder.
func (s *Service) GrantReward(ctx context.Context, userID ulid.ULID, coins int, xp int) error {
	entity, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if coins > 0 {
		if err := s.Repository.UpdateCoinsAtomic(ctx, entity.Id, coins); err != nil {
			return err
		}
		entity.Coins += coins
	}

	entity.UpdatedAt = time.Now()
	if leveled := entity.AddXP(xp); leveled {
		logger.Info().Str("pet_id", entity.Id.String()).Int("level", entity.Level).Msg("pet leveled up")
	}

	return s.Repository.Update(ctx, entity)
}

type WeeklyDigest struct {
	Analysis       *advisor.AnalysisResult `json:"analysis"`
	HappinessDelta int                     `json:"happinessDelta"`
	XPAwarded      int                     `json:"xpAwarded"`
	Pet            *Pet                    `json:"pet"`
}

// WeeklyDigest feeds the user's raw transaction feed through the advisor and
// lets the outcome move the pet's mood. This is the service-level path that
// hands the analyzer signed amounts: income lines arrive as negative values
// here, which the public analyze endpoint never accepts.
func (s *Service) WeeklyDigest(ctx context.Context, userID ulid.ULID, transactions []advisor.Transaction, monthlyBudget *float64) (*WeeklyDigest, error) {
	entity, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.Advisor.Analyze(ctx, transactions, monthlyBudget)
	if err != nil {
		return nil, err
	}

	happinessDelta := 0
	if analysis.NetBalance > 0 {
		happinessDelta += digestHappinessBonus
	}
	for _, alert := range analysis.OverspendingAlerts {
		if alert.Severity == advisor.SeverityHigh {
			happinessDelta -= digestHappinessPenalty
			break
		}
	}

	entity.Happiness = clamp(entity.Happiness + happinessDelta)
	entity.UpdatedAt = time.Now()
	entity.AddXP(digestXP)

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}

	return &WeeklyDigest{
		Analysis:       analysis,
		HappinessDelta: happinessDelta,
		XPAwarded:      digestXP,
		Pet:            entity,
	}, nil
}
