package infrastructure

import (
	"gorm.io/gorm"
)

type ResourceCounter struct {
	DB *gorm.DB
}

func (r *ResourceCounter) CountFriendships(userID string) (int64, error) {
	var count int64
	err := r.DB.Table("friendships").
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *ResourceCounter) CountPendingRequests(userID string) (int64, error) {
	var count int64
	err := r.DB.Table("friendships").
		Where("requester_id = ? AND status = ?", userID, "PENDING").
		Count(&count).Error
	return count, err
}
