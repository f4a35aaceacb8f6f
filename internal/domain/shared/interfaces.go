package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

type UserGetter interface {
	UserChecker
	GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error)
}

// PetRewarder is what quest claiming needs from the pet service.
type PetRewarder interface {
	GrantReward(ctx context.Context, userID ulid.ULID, coins int, xp int) error
}
