package infrastructure

import (
	"context"
	"errors"
	"time"

	"Petfolio/internal/domain/quest"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type QuestRepository struct {
	DB *gorm.DB
}

type questProgressDB struct {
	Id          string     `gorm:"type:varchar(26);primaryKey"`
	UserId      string     `gorm:"type:varchar(26);not null;index:idx_quest_progress_user"`
	QuestCode   string     `gorm:"type:varchar(50);not null"`
	PeriodStart time.Time  `gorm:"type:timestamp;not null"`
	Count       int        `gorm:"not null;default:0"`
	Status      string     `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	ClaimedAt   *time.Time `gorm:"type:timestamp"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;not null"`
}

func (questProgressDB) TableName() string {
	return "quest_progress"
}

func toDomainProgress(qdb *questProgressDB) (*quest.Progress, error) {
	id, err := pkg.ParseULID(qdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(qdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &quest.Progress{
		Id:          id,
		UserId:      userID,
		QuestCode:   qdb.QuestCode,
		PeriodStart: qdb.PeriodStart,
		Count:       qdb.Count,
		Status:      quest.Status(qdb.Status),
		ClaimedAt:   qdb.ClaimedAt,
		CreatedAt:   qdb.CreatedAt,
		UpdatedAt:   qdb.UpdatedAt,
	}, nil
}

func toDBProgress(p *quest.Progress) *questProgressDB {
	return &questProgressDB{
		Id:          p.Id.String(),
		UserId:      p.UserId.String(),
		QuestCode:   p.QuestCode,
		PeriodStart: p.PeriodStart,
		Count:       p.Count,
		Status:      string(p.Status),
		ClaimedAt:   p.ClaimedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *QuestRepository) Create(ctx context.Context, progress *quest.Progress) error {
	qdb := toDBProgress(progress)
	if err := r.DB.WithContext(ctx).Table("quest_progress").Create(qdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Update writes with a map because Count can move back to zero and Status
// transitions must always land.
func (r *QuestRepository) Update(ctx context.Context, progress *quest.Progress) error {
	qdb := toDBProgress(progress)
	fields := map[string]interface{}{
		"count":      qdb.Count,
		"status":     qdb.Status,
		"claimed_at": qdb.ClaimedAt,
		"updated_at": qdb.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Table("quest_progress").Where("id = ?", qdb.Id).Updates(fields).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *QuestRepository) GetById(ctx context.Context, id ulid.ULID) (*quest.Progress, error) {
	var qdb questProgressDB
	if err := r.DB.WithContext(ctx).Table("quest_progress").Where("id = ?", id.String()).First(&qdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrQuestNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainProgress(&qdb)
}

func (r *QuestRepository) ListByUserSince(ctx context.Context, userID ulid.ULID, since time.Time) ([]*quest.Progress, error) {
	var rows []questProgressDB
	err := r.DB.WithContext(ctx).
		Table("quest_progress").
		Where("user_id = ? AND period_start >= ?", userID.String(), since).
		Order("period_start DESC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	result := make([]*quest.Progress, 0, len(rows))
	for i := range rows {
		progress, err := toDomainProgress(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, progress)
	}
	return result, nil
}
