package pet_test

import (
	"context"
	"testing"
	"time"

	"Petfolio/internal/domain/advisor"
	"Petfolio/internal/domain/pet"
	"Petfolio/internal/domain/shared"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakePetRepository struct {
	createFn            func(ctx context.Context, p *pet.Pet) error
	updateFn            func(ctx context.Context, p *pet.Pet) error
	getByUserIdFn       func(ctx context.Context, userID ulid.ULID) (*pet.Pet, error)
	updateCoinsAtomicFn func(ctx context.Context, petID ulid.ULID, delta int) error
}

func (f *fakePetRepository) Create(ctx context.Context, p *pet.Pet) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePetRepository) Update(ctx context.Context, p *pet.Pet) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePetRepository) GetByUserId(ctx context.Context, userID ulid.ULID) (*pet.Pet, error) {
	if f.getByUserIdFn != nil {
		return f.getByUserIdFn(ctx, userID)
	}
	return nil, appErrors.ErrPetNotFound
}

func (f *fakePetRepository) UpdateCoinsAtomic(ctx context.Context, petID ulid.ULID, delta int) error {
	if f.updateCoinsAtomicFn != nil {
		return f.updateCoinsAtomicFn(ctx, petID, delta)
	}
	return nil
}

type fakeUserGetter struct {
	existsFn func(ctx context.Context, userID ulid.ULID) error
}

func (f *fakeUserGetter) Exists(ctx context.Context, userID ulid.ULID) error {
	if f.existsFn != nil {
		return f.existsFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserGetter) GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error) {
	return nil, nil
}

func newPetService(repo *fakePetRepository) *pet.Service {
	checker := shared.NewUserCheckerService(&fakeUserGetter{})
	return pet.NewService(repo, advisor.NewService(), checker)
}

func existingPet(userID ulid.ULID, coins int) *pet.Pet {
	now := time.Now()
	return &pet.Pet{
		Id:           pkg.GenerateULIDObject(),
		UserId:       userID,
		Name:         "Momo",
		Species:      pet.SpeciesCat,
		Level:        1,
		Coins:        coins,
		Hunger:       50,
		Happiness:    50,
		LastFedAt:    now,
		LastPlayedAt: now,
	}
}

func TestGetOrCreate_AdoptsDefaultPet(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	var created *pet.Pet
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return nil, appErrors.ErrPetNotFound
		},
		createFn: func(ctx context.Context, p *pet.Pet) error {
			created = p
			return nil
		},
	}

	svc := newPetService(repo)
	entity, err := svc.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called for a first-time user")
	}
	if entity.UserId != userID {
		t.Errorf("UserId = %s, want %s", entity.UserId, userID)
	}
	if entity.Name != "Momo" || entity.Species != pet.SpeciesCat {
		t.Errorf("default pet = %s/%s, want Momo/CAT", entity.Name, entity.Species)
	}
	if entity.Coins != 50 {
		t.Errorf("starting Coins = %d, want 50", entity.Coins)
	}
	if entity.Level != 1 || entity.XP != 0 {
		t.Errorf("starting Level/XP = %d/%d, want 1/0", entity.Level, entity.XP)
	}
}

func TestGetOrCreate_AppliesDecay(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	stale := existingPet(userID, 0)
	stale.LastFedAt = time.Now().Add(-3 * time.Hour)
	stale.LastPlayedAt = time.Now().Add(-3 * time.Hour)

	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return stale, nil
		},
	}

	svc := newPetService(repo)
	entity, err := svc.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if entity.Hunger != 62 {
		t.Errorf("Hunger = %d, want 62 (50 + 3h*4)", entity.Hunger)
	}
	if entity.Happiness != 44 {
		t.Errorf("Happiness = %d, want 44 (50 - 3h*2)", entity.Happiness)
	}
}

func TestFeed(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 25)
	var updated *pet.Pet
	charged := 0
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
		updateFn: func(ctx context.Context, p *pet.Pet) error {
			updated = p
			return nil
		},
		updateCoinsAtomicFn: func(ctx context.Context, petID ulid.ULID, delta int) error {
			charged = delta
			return nil
		},
	}

	svc := newPetService(repo)
	fed, err := svc.Feed(context.Background(), userID)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	if updated == nil {
		t.Fatal("expected Update to be called")
	}
	if charged != -10 {
		t.Errorf("coin delta = %d, want -10", charged)
	}
	if fed.Coins != 15 {
		t.Errorf("Coins = %d, want 15 (25 - 10)", fed.Coins)
	}
	if fed.Hunger != 20 {
		t.Errorf("Hunger = %d, want 20 (50 - 30)", fed.Hunger)
	}
	if fed.XP != 5 {
		t.Errorf("XP = %d, want 5", fed.XP)
	}
}

func TestFeed_NotEnoughCoins(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 9)
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
		updateFn: func(ctx context.Context, p *pet.Pet) error {
			t.Fatal("Update must not be called when feeding fails")
			return nil
		},
		updateCoinsAtomicFn: func(ctx context.Context, petID ulid.ULID, delta int) error {
			t.Fatal("no coins should move when feeding fails")
			return nil
		},
	}

	svc := newPetService(repo)
	if _, err := svc.Feed(context.Background(), userID); err == nil {
		t.Fatal("expected an error with 9 coins")
	}
}

func TestPlay(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 0)
	entity.Happiness = 95
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
	}

	svc := newPetService(repo)
	played, err := svc.Play(context.Background(), userID)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if played.Happiness != 100 {
		t.Errorf("Happiness = %d, want clamp at 100", played.Happiness)
	}
	if played.XP != 10 {
		t.Errorf("XP = %d, want 10", played.XP)
	}
}

func TestPlay_PersistedDecayIsNotChargedAgain(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	stored := existingPet(userID, 0)
	stored.Hunger = 20
	stored.LastFedAt = time.Now().Add(-10 * time.Hour)

	// Round-trips through copies, like a real row would.
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			clone := *stored
			return &clone, nil
		},
		updateFn: func(ctx context.Context, p *pet.Pet) error {
			clone := *p
			stored = &clone
			return nil
		},
	}

	svc := newPetService(repo)
	played, err := svc.Play(context.Background(), userID)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if played.Hunger != 60 {
		t.Errorf("Hunger after Play = %d, want 60 (20 + 10h*4)", played.Hunger)
	}

	entity, err := svc.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if entity.Hunger != 60 {
		t.Errorf("Hunger after re-read = %d, want still 60, not decayed twice", entity.Hunger)
	}
}

func TestGrantReward(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 10)
	credited := 0
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
		updateCoinsAtomicFn: func(ctx context.Context, petID ulid.ULID, delta int) error {
			credited = delta
			return nil
		},
	}

	svc := newPetService(repo)
	if err := svc.GrantReward(context.Background(), userID, 40, 110); err != nil {
		t.Fatalf("GrantReward: %v", err)
	}

	if credited != 40 {
		t.Errorf("coin delta = %d, want 40", credited)
	}
	if entity.Coins != 50 {
		t.Errorf("Coins = %d, want 50", entity.Coins)
	}
	if entity.Level != 2 {
		t.Errorf("Level = %d, want 2 after 110 XP", entity.Level)
	}
}

func TestWeeklyDigest_PositiveBalanceLiftsMood(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 0)
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
	}

	// Raw signed feed: the income line is negative.
	transactions := []advisor.Transaction{
		{Amount: -500, Category: "salary", Date: time.Now().AddDate(0, 0, -3)},
		{Amount: 80, Category: "food", Date: time.Now().AddDate(0, 0, -2)},
	}

	svc := newPetService(repo)
	digest, err := svc.WeeklyDigest(context.Background(), userID, transactions, nil)
	if err != nil {
		t.Fatalf("WeeklyDigest: %v", err)
	}

	if digest.Analysis.NetBalance != 420 {
		t.Errorf("NetBalance = %v, want 420", digest.Analysis.NetBalance)
	}
	if digest.HappinessDelta != 10 {
		t.Errorf("HappinessDelta = %d, want +10 for a surplus week", digest.HappinessDelta)
	}
	if digest.Pet.Happiness != 60 {
		t.Errorf("Happiness = %d, want 60", digest.Pet.Happiness)
	}
	if digest.XPAwarded != 15 {
		t.Errorf("XPAwarded = %d, want 15", digest.XPAwarded)
	}
}

func TestWeeklyDigest_HighAlertHurtsMood(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 0)
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
	}

	// food default budget is 500; 800 spent is a 60% overshoot, high severity,
	// and there is no income to offset it.
	transactions := []advisor.Transaction{
		{Amount: 800, Category: "food", Date: time.Now().AddDate(0, 0, -1)},
	}

	svc := newPetService(repo)
	digest, err := svc.WeeklyDigest(context.Background(), userID, transactions, nil)
	if err != nil {
		t.Fatalf("WeeklyDigest: %v", err)
	}

	if digest.HappinessDelta != -10 {
		t.Errorf("HappinessDelta = %d, want -10 for a high severity alert", digest.HappinessDelta)
	}
	if digest.Pet.Happiness != 40 {
		t.Errorf("Happiness = %d, want 40", digest.Pet.Happiness)
	}
}

func TestWeeklyDigest_EmptyFeedFails(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	entity := existingPet(userID, 0)
	repo := &fakePetRepository{
		getByUserIdFn: func(ctx context.Context, id ulid.ULID) (*pet.Pet, error) {
			return entity, nil
		},
	}

	svc := newPetService(repo)
	if _, err := svc.WeeklyDigest(context.Background(), userID, nil, nil); err == nil {
		t.Fatal("expected the advisor's empty-input error to propagate")
	}
}
