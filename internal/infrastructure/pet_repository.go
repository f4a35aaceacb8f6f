package infrastructure

import (
	"context"
	"errors"
	"time"

	"Petfolio/internal/domain/pet"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type PetRepository struct {
	DB *gorm.DB
}

type petDB struct {
	Id           string    `gorm:"type:varchar(26);primaryKey"`
	UserId       string    `gorm:"type:varchar(26);uniqueIndex:idx_pets_user_id;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Species      string    `gorm:"type:varchar(10);not null;default:'CAT'"`
	Level        int       `gorm:"not null;default:1"`
	XP           int       `gorm:"column:xp;not null;default:0"`
	Coins        int       `gorm:"not null;default:0"`
	Hunger       int       `gorm:"not null;default:20"`
	Happiness    int       `gorm:"not null;default:80"`
	LastFedAt    time.Time `gorm:"type:timestamp"`
	LastPlayedAt time.Time `gorm:"type:timestamp"`
	CreatedAt    time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;not null"`
}

func (petDB) TableName() string {
	return "pets"
}

func toDomainPet(pdb *petDB) (*pet.Pet, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(pdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &pet.Pet{
		Id:           id,
		UserId:       userID,
		Name:         pdb.Name,
		Species:      pet.Species(pdb.Species),
		Level:        pdb.Level,
		XP:           pdb.XP,
		Coins:        pdb.Coins,
		Hunger:       pdb.Hunger,
		Happiness:    pdb.Happiness,
		LastFedAt:    pdb.LastFedAt,
		LastPlayedAt: pdb.LastPlayedAt,
		CreatedAt:    pdb.CreatedAt,
		UpdatedAt:    pdb.UpdatedAt,
	}, nil
}

func toDBPet(p *pet.Pet) *petDB {
	return &petDB{
		Id:           p.Id.String(),
		UserId:       p.UserId.String(),
		Name:         p.Name,
		Species:      string(p.Species),
		Level:        p.Level,
		XP:           p.XP,
		Coins:        p.Coins,
		Hunger:       p.Hunger,
		Happiness:    p.Happiness,
		LastFedAt:    p.LastFedAt,
		LastPlayedAt: p.LastPlayedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *PetRepository) Create(ctx context.Context, p *pet.Pet) error {
	pdb := toDBPet(p)
	if err := r.DB.WithContext(ctx).Table("pets").Create(pdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Update persists the row except for coins, which only move through
// UpdateCoinsAtomic. Stats can legitimately move down to zero, so a map is
// used instead of Updates(struct), which skips zero values.
func (r *PetRepository) Update(ctx context.Context, p *pet.Pet) error {
	pdb := toDBPet(p)
	fields := map[string]interface{}{
		"name":           pdb.Name,
		"species":        pdb.Species,
		"level":          pdb.Level,
		"xp":             pdb.XP,
		"hunger":         pdb.Hunger,
		"happiness":      pdb.Happiness,
		"last_fed_at":    pdb.LastFedAt,
		"last_played_at": pdb.LastPlayedAt,
		"updated_at":     pdb.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Table("pets").Where("id = ?", pdb.Id).Updates(fields).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PetRepository) GetByUserId(ctx context.Context, userID ulid.ULID) (*pet.Pet, error) {
	var pdb petDB
	if err := r.DB.WithContext(ctx).Table("pets").Where("user_id = ?", userID.String()).First(&pdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPetNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainPet(&pdb)
}

// UpdateCoinsAtomic moves the balance in a single statement. A negative
// delta only applies when the pet can afford it.
func (r *PetRepository) UpdateCoinsAtomic(ctx context.Context, petID ulid.ULID, delta int) error {
	query := r.DB.WithContext(ctx).Table("pets").Where("id = ?", petID.String())
	if delta < 0 {
		query = query.Where("coins >= ?", -delta)
	}

	result := query.Update("coins", gorm.Expr("coins + ?", delta))
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		if delta < 0 {
			return appErrors.NewValidationError("coins", "not enough coins")
		}
		return appErrors.ErrPetNotFound
	}
	return nil
}
