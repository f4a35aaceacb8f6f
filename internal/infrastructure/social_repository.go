package infrastructure

import (
	"context"
	"errors"
	"time"

	"Petfolio/internal/domain/social"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type SocialRepository struct {
	DB *gorm.DB
}

type friendshipDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey"`
	RequesterId string    `gorm:"type:varchar(26);not null;index:idx_friendships_pair,unique"`
	AddresseeId string    `gorm:"type:varchar(26);not null;index:idx_friendships_pair,unique"`
	Status      string    `gorm:"type:varchar(10);not null;default:'PENDING'"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null"`
}

func (friendshipDB) TableName() string {
	return "friendships"
}

func toDomainFriendship(fdb *friendshipDB) (*social.Friendship, error) {
	id, err := pkg.ParseULID(fdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	requesterID, err := pkg.ParseULID(fdb.RequesterId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	addresseeID, err := pkg.ParseULID(fdb.AddresseeId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &social.Friendship{
		Id:          id,
		RequesterId: requesterID,
		AddresseeId: addresseeID,
		Status:      social.FriendshipStatus(fdb.Status),
		CreatedAt:   fdb.CreatedAt,
		UpdatedAt:   fdb.UpdatedAt,
	}, nil
}

func toDBFriendship(f *social.Friendship) *friendshipDB {
	return &friendshipDB{
		Id:          f.Id.String(),
		RequesterId: f.RequesterId.String(),
		AddresseeId: f.AddresseeId.String(),
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (r *SocialRepository) Create(ctx context.Context, friendship *social.Friendship) error {
	fdb := toDBFriendship(friendship)
	if err := r.DB.WithContext(ctx).Table("friendships").Create(fdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *SocialRepository) Update(ctx context.Context, friendship *social.Friendship) error {
	fdb := toDBFriendship(friendship)
	fields := map[string]interface{}{
		"requester_id": fdb.RequesterId,
		"addressee_id": fdb.AddresseeId,
		"status":       fdb.Status,
		"updated_at":   fdb.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Table("friendships").Where("id = ?", fdb.Id).Updates(fields).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *SocialRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("friendships").Where("id = ?", id.String()).Delete(&friendshipDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrFriendNotFound
	}
	return nil
}

func (r *SocialRepository) GetById(ctx context.Context, id ulid.ULID) (*social.Friendship, error) {
	var fdb friendshipDB
	if err := r.DB.WithContext(ctx).Table("friendships").Where("id = ?", id.String()).First(&fdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrFriendNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainFriendship(&fdb)
}

// GetByPair finds the row between two users regardless of who asked first.
func (r *SocialRepository) GetByPair(ctx context.Context, a, b ulid.ULID) (*social.Friendship, error) {
	var fdb friendshipDB
	err := r.DB.WithContext(ctx).
		Table("friendships").
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			a.String(), b.String(), b.String(), a.String()).
		First(&fdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrFriendNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainFriendship(&fdb)
}

func (r *SocialRepository) ListByUser(ctx context.Context, userID ulid.ULID, status social.FriendshipStatus, pagination *pkg.PaginationParams) ([]*social.Friendship, int64, error) {
	query := r.DB.WithContext(ctx).
		Table("friendships").
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?", userID.String(), userID.String(), string(status))

	result, total, err := pkg.Paginate[social.Friendship, friendshipDB](query, pagination, "updated_at DESC", toDomainFriendship)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return result, total, nil
}

func (r *SocialRepository) ListPendingForAddressee(ctx context.Context, userID ulid.ULID) ([]*social.Friendship, error) {
	var rows []friendshipDB
	err := r.DB.WithContext(ctx).
		Table("friendships").
		Where("addressee_id = ? AND status = ?", userID.String(), string(social.StatusPending)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	result := make([]*social.Friendship, 0, len(rows))
	for i := range rows {
		friendship, err := toDomainFriendship(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, friendship)
	}
	return result, nil
}

func (r *SocialRepository) CountAcceptedByUser(ctx context.Context, userID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("friendships").
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			userID.String(), userID.String(), string(social.StatusAccepted)).
		Count(&count).Error
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}
