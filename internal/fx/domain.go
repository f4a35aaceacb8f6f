package fx

import (
	"Petfolio/config"
	"Petfolio/internal/domain/advisor"
	"Petfolio/internal/domain/auth"
	"Petfolio/internal/domain/pet"
	"Petfolio/internal/domain/quest"
	"Petfolio/internal/domain/shared"
	"Petfolio/internal/domain/social"
	"Petfolio/internal/domain/user"
	"Petfolio/internal/infrastructure"
	"Petfolio/internal/logger"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserServiceAdapter,
		newUserCheckerService,

		newGoogleClientID,
		newAuthService,

		newAdvisorService,
		newPetService,
		newQuestService,
		newSocialService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserServiceAdapter(userSvc *user.Service) *user.UserServiceAdapter {
	return user.NewUserServiceAdapter(userSvc)
}

func newUserCheckerService(adapter *user.UserServiceAdapter) *shared.UserCheckerService {
	return shared.NewUserCheckerService(adapter)
}

func newGoogleClientID(cfg *config.Config) string {
	googleClientID := ""
	if cfg.GoogleOAuth.Enabled {
		if cfg.GoogleOAuth.ClientID == "" {
			logger.Warn().
				Msg("GOOGLE_OAUTH_ENABLED=true but GOOGLE_OAUTH_CLIENT_ID is empty. Check the .env file")
		} else {
			googleClientID = cfg.GoogleOAuth.ClientID
			logger.Info().
				Int("client_id_length", len(googleClientID)).
				Msg("Google OAuth enabled")
		}
	} else {
		logger.Info().Msg("Google OAuth disabled (GOOGLE_OAUTH_ENABLED is not 'true')")
	}
	return googleClientID
}

func newAuthService(
	repo *infrastructure.UserRepository,
	userSvc *user.Service,
	googleClientID string,
) *auth.Service {
	return auth.NewService(repo, userSvc, googleClientID)
}

func newAdvisorService() *advisor.Service {
	return advisor.NewService()
}

func newPetService(
	repo *infrastructure.PetRepository,
	advisorSvc *advisor.Service,
	userChecker *shared.UserCheckerService,
) *pet.Service {
	return pet.NewService(repo, advisorSvc, userChecker)
}

func newQuestService(
	repo *infrastructure.QuestRepository,
	petSvc *pet.Service,
	userChecker *shared.UserCheckerService,
) *quest.Service {
	return quest.NewService(repo, petSvc, userChecker)
}

func newSocialService(
	repo *infrastructure.SocialRepository,
	userRepo *infrastructure.UserRepository,
	petRepo *infrastructure.PetRepository,
) *social.Service {
	return social.NewService(repo, userRepo, petRepo)
}
