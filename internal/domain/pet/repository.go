package pet

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, pet *Pet) error
	Update(ctx context.Context, pet *Pet) error
	GetByUserId(ctx context.Context, userID ulid.ULID) (*Pet, error)
	UpdateCoinsAtomic(ctx context.Context, petID ulid.ULID, delta int) error
}
