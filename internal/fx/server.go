package fx

import (
	"context"

	"Petfolio/config"
	"Petfolio/internal/infrastructure"
	"Petfolio/internal/logger"
	"Petfolio/internal/middleware"
	"Petfolio/internal/routes"

	docs "Petfolio/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
	resourceCounter *infrastructure.ResourceCounter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/register", handler.Registration)
		public.POST("/auth/google", handler.GoogleAuth)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser())
	{
		users := private.Group("/users")
		{
			users.GET("/me", handler.GetMe)
			users.PATCH("/me", handler.UpdateUserName)
			users.PATCH("/me/password", handler.UpdateUserPassword)
			users.DELETE("/me", handler.DeleteUser)
		}

		advisor := private.Group("/advisor")
		{
			advisor.POST("/analyze", handler.AnalyzeBudget)
		}

		pets := private.Group("/pets")
		{
			pets.GET("/me", handler.GetPet)
			pets.PATCH("/me", handler.RenamePet)
			pets.POST("/me/feed", handler.FeedPet)
			pets.POST("/me/play", handler.PlayWithPet)
			pets.POST("/me/digest", handler.WeeklyDigest)
		}

		quests := private.Group("/quests")
		{
			quests.GET("", handler.ListQuests)
			quests.POST("/:code/claim", handler.ClaimQuest)
		}

		friends := private.Group("/friends")
		{
			friends.POST("/requests", middleware.CheckResourceLimit("pending_requests", resourceCounter), handler.SendFriendRequest)
			friends.GET("/requests", handler.ListPendingRequests)
			friends.POST("/requests/:id/accept", middleware.CheckResourceLimit("friendships", resourceCounter), handler.AcceptFriendRequest)
			friends.POST("/requests/:id/decline", handler.DeclineFriendRequest)
			friends.GET("", handler.ListFriends)
			friends.DELETE("/:id", handler.RemoveFriend)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Server starting")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Server stopping...")
			return nil
		},
	})
}
