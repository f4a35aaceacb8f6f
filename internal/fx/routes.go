package fx

import (
	"time"

	"Petfolio/internal/domain/advisor"
	"Petfolio/internal/domain/auth"
	"Petfolio/internal/domain/pet"
	"Petfolio/internal/domain/quest"
	"Petfolio/internal/domain/social"
	"Petfolio/internal/domain/user"
	"Petfolio/internal/middleware"
	"Petfolio/internal/routes"

	"go.uber.org/fx"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	jwtSvc *middleware.JwtService,
	authSvc *auth.Service,
	advisorSvc *advisor.Service,
	petSvc *pet.Service,
	questSvc *quest.Service,
	socialSvc *social.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:    userSvc,
		JwtService:     jwtSvc,
		AuthService:    authSvc,
		AdvisorService: advisorSvc,
		PetService:     petSvc,
		QuestService:   questSvc,
		SocialService:  socialSvc,
	}
}

func newAuthRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
