package quest

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, progress *Progress) error
	Update(ctx context.Context, progress *Progress) error
	GetById(ctx context.Context, id ulid.ULID) (*Progress, error)
	ListByUserSince(ctx context.Context, userID ulid.ULID, since time.Time) ([]*Progress, error)
}
