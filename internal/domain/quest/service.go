package quest

import (
	"context"
	"time"

	"Petfolio/internal/domain/shared"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/logger"

	"github.com/oklog/ulid/v2"
)

// View merges a catalog definition with the user's progress for the
// current period.
type View struct {
	Definition
	Count     int        `json:"count"`
	Status    Status     `json:"status"`
	ClaimedAt *time.Time `json:"claimedAt,omitempty"`
}

type Service struct {
	Repository  Repository
	Rewarder    shared.PetRewarder
	UserChecker *shared.UserCheckerService

	now func() time.Time
}

func NewService(repo Repository, rewarder shared.PetRewarder, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		Rewarder:    rewarder,
		UserChecker: userChecker,
		now:         time.Now,
	}
}

// List returns every catalog quest with the user's progress in the current
// period. Quests never touched this period show up as active with count 0.
func (s *Service) List(ctx context.Context, userID ulid.ULID) ([]View, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	since := PeriodStartFor(CadenceWeekly, now)
	rows, err := s.Repository.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	byID := make(map[ulid.ULID]*Progress, len(rows))
	for _, row := range rows {
		byID[row.Id] = row
	}

	views := make([]View, 0, len(Definitions))
	for _, def := range Definitions {
		period := PeriodStartFor(def.Cadence, now)
		view := View{Definition: def, Status: StatusActive}
		if row, ok := byID[GenerateProgressID(userID, def.Code, period)]; ok {
			view.Count = row.Count
			view.Status = row.Status
			view.ClaimedAt = row.ClaimedAt
		}
		views = append(views, view)
	}
	return views, nil
}

// Increment advances the user's progress on a quest by n. Completion flips
// the status once the target is reached; claimed quests are left alone.
func (s *Service) Increment(ctx context.Context, userID ulid.ULID, code string, n int) (*Progress, error) {
	if n <= 0 {
		return nil, appErrors.NewValidationError("n", "increment must be positive")
	}

	def, ok := FindDefinition(code)
	if !ok {
		return nil, appErrors.ErrQuestNotFound.WithDetails(map[string]interface{}{"code": code})
	}

	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	row, err := s.getOrCreate(ctx, userID, def)
	if err != nil {
		return nil, err
	}

	if row.Status == StatusClaimed {
		return row, nil
	}

	row.Count += n
	if row.Count > def.Target {
		row.Count = def.Target
	}
	if row.Status == StatusActive && row.Count >= def.Target {
		row.Status = StatusCompleted
		logger.Info().Str("user_id", userID.String()).Str("quest", def.Code).Msg("quest completed")
	}
	row.UpdatedAt = s.now()

	if err := s.Repository.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Claim pays out a completed quest through the pet. Claiming twice is a
// conflict, claiming early a validation error.
func (s *Service) Claim(ctx context.Context, userID ulid.ULID, code string) (*Progress, error) {
	def, ok := FindDefinition(code)
	if !ok {
		return nil, appErrors.ErrQuestNotFound.WithDetails(map[string]interface{}{"code": code})
	}

	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	period := PeriodStartFor(def.Cadence, s.now())
	row, err := s.Repository.GetById(ctx, GenerateProgressID(userID, def.Code, period))
	if err != nil {
		return nil, appErrors.ErrQuestNotFound.WithError(err)
	}

	switch row.Status {
	case StatusClaimed:
		return nil, appErrors.NewConflictMessage("quest reward already claimed")
	case StatusActive:
		return nil, appErrors.NewValidationError("status", "quest is not completed yet")
	}

	if err := s.Rewarder.GrantReward(ctx, userID, def.RewardCoins, def.RewardXP); err != nil {
		return nil, err
	}

	now := s.now()
	row.Status = StatusClaimed
	row.ClaimedAt = &now
	row.UpdatedAt = now
	if err := s.Repository.Update(ctx, row); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", userID.String()).
		Str("quest", def.Code).
		Int("coins", def.RewardCoins).
		Int("xp", def.RewardXP).
		Msg("quest reward claimed")
	return row, nil
}

func (s *Service) getOrCreate(ctx context.Context, userID ulid.ULID, def Definition) (*Progress, error) {
	period := PeriodStartFor(def.Cadence, s.now())
	id := GenerateProgressID(userID, def.Code, period)

	row, err := s.Repository.GetById(ctx, id)
	if err == nil {
		return row, nil
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrQuestNotFound.Code {
		return nil, err
	}

	now := s.now()
	row = &Progress{
		Id:          id,
		UserId:      userID,
		QuestCode:   def.Code,
		PeriodStart: period,
		Count:       0,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repository.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}
