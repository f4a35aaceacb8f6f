package social

import (
	"context"

	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, friendship *Friendship) error
	Update(ctx context.Context, friendship *Friendship) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetById(ctx context.Context, id ulid.ULID) (*Friendship, error)
	GetByPair(ctx context.Context, a, b ulid.ULID) (*Friendship, error)
	ListByUser(ctx context.Context, userID ulid.ULID, status FriendshipStatus, pagination *pkg.PaginationParams) ([]*Friendship, int64, error)
	ListPendingForAddressee(ctx context.Context, userID ulid.ULID) ([]*Friendship, error)
	CountAcceptedByUser(ctx context.Context, userID ulid.ULID) (int64, error)
}
