package fx

import (
	"Petfolio/config"
	"Petfolio/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newPetRepository,
		newQuestRepository,
		newSocialRepository,
		newResourceCounter,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newPetRepository(db *gorm.DB) *infrastructure.PetRepository {
	return &infrastructure.PetRepository{DB: db}
}

func newQuestRepository(db *gorm.DB) *infrastructure.QuestRepository {
	return &infrastructure.QuestRepository{DB: db}
}

func newSocialRepository(db *gorm.DB) *infrastructure.SocialRepository {
	return &infrastructure.SocialRepository{DB: db}
}

func newResourceCounter(db *gorm.DB) *infrastructure.ResourceCounter {
	return &infrastructure.ResourceCounter{DB: db}
}
