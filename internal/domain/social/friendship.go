package social

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type FriendshipStatus string

const (
	StatusPending  FriendshipStatus = "PENDING"
	StatusAccepted FriendshipStatus = "ACCEPTED"
	StatusDeclined FriendshipStatus = "DECLINED"
)

// Friendship is a directed request: RequesterId asked, AddresseeId answers.
// An accepted row is the friendship itself, no mirror row is stored.
type Friendship struct {
	Id          ulid.ULID        `gorm:"type:varchar(26);primaryKey" json:"id"`
	RequesterId ulid.ULID        `gorm:"type:varchar(26);not null;index:idx_friendships_pair,unique" json:"requesterId"`
	AddresseeId ulid.ULID        `gorm:"type:varchar(26);not null;index:idx_friendships_pair,unique" json:"addresseeId"`
	Status      FriendshipStatus `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
	CreatedAt   time.Time        `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// Involves reports whether the user is on either side of the row.
func (f *Friendship) Involves(userID ulid.ULID) bool {
	return f.RequesterId == userID || f.AddresseeId == userID
}

// Other returns the opposite side of the friendship from the user's view.
func (f *Friendship) Other(userID ulid.ULID) ulid.ULID {
	if f.RequesterId == userID {
		return f.AddresseeId
	}
	return f.RequesterId
}
