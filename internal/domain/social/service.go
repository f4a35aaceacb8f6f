package social

import (
	"context"
	"strings"
	"time"

	"Petfolio/internal/domain/pet"
	"Petfolio/internal/domain/user"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/logger"
	"Petfolio/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// UserDirectory is the slice of the user domain the social service reads.
type UserDirectory interface {
	GetById(ctx context.Context, id ulid.ULID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// PetSource exposes friends' pets for the friend list.
type PetSource interface {
	GetByUserId(ctx context.Context, userID ulid.ULID) (*pet.Pet, error)
}

// FriendPet is the public slice of a friend's pet. No coins, no stats a
// friend has no business seeing.
type FriendPet struct {
	Name    string      `json:"name"`
	Species pet.Species `json:"species"`
	Level   int         `json:"level"`
	Mood    string      `json:"mood"`
}

type FriendView struct {
	FriendshipId ulid.ULID  `json:"friendshipId"`
	UserId       ulid.ULID  `json:"userId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Since        time.Time  `json:"since"`
	Pet          *FriendPet `json:"pet,omitempty"`
}

type PendingRequestView struct {
	FriendshipId ulid.ULID `json:"friendshipId"`
	RequesterId  ulid.ULID `json:"requesterId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RequestedAt  time.Time `json:"requestedAt"`
}

type Service struct {
	Repository Repository
	Users      UserDirectory
	Pets       PetSource
}

func NewService(repo Repository, users UserDirectory, pets PetSource) *Service {
	return &Service{Repository: repo, Users: users, Pets: pets}
}

// SendRequest opens a pending friendship towards the user behind the email.
// A previously declined pair can be asked again; pending and accepted pairs
// cannot.
func (s *Service) SendRequest(ctx context.Context, requesterID ulid.ULID, email string) (*Friendship, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, appErrors.NewValidationError("email", "email cannot be empty")
	}

	addressee, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.ErrUserNotFound.WithError(err)
	}

	if addressee.Id == requesterID {
		return nil, appErrors.NewValidationError("email", "you cannot befriend yourself")
	}

	existing, err := s.Repository.GetByPair(ctx, requesterID, addressee.Id)
	if err == nil {
		switch existing.Status {
		case StatusPending:
			return nil, appErrors.NewConflictMessage("friend request already pending")
		case StatusAccepted:
			return nil, appErrors.NewConflictMessage("you are already friends")
		}
		existing.RequesterId = requesterID
		existing.AddresseeId = addressee.Id
		existing.Status = StatusPending
		existing.UpdatedAt = time.Now()
		if err := s.Repository.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if appErr, ok := appErrors.AsAppError(err); !ok || appErr.Code != appErrors.ErrFriendNotFound.Code {
		return nil, err
	}

	now := time.Now()
	friendship := &Friendship{
		Id:          pkg.GenerateULIDObject(),
		RequesterId: requesterID,
		AddresseeId: addressee.Id,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repository.Create(ctx, friendship); err != nil {
		return nil, err
	}

	logger.Info().
		Str("requester_id", requesterID.String()).
		Str("addressee_id", addressee.Id.String()).
		Msg("friend request sent")
	return friendship, nil
}

// Accept confirms a pending request. Only the addressee may answer.
func (s *Service) Accept(ctx context.Context, userID, friendshipID ulid.ULID) (*Friendship, error) {
	return s.answer(ctx, userID, friendshipID, StatusAccepted)
}

// Decline rejects a pending request. Only the addressee may answer.
func (s *Service) Decline(ctx context.Context, userID, friendshipID ulid.ULID) (*Friendship, error) {
	return s.answer(ctx, userID, friendshipID, StatusDeclined)
}

func (s *Service) answer(ctx context.Context, userID, friendshipID ulid.ULID, status FriendshipStatus) (*Friendship, error) {
	friendship, err := s.Repository.GetById(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}
	if friendship.Status != StatusPending {
		return nil, appErrors.NewConflictMessage("friend request was already answered")
	}

	friendship.Status = status
	friendship.UpdatedAt = time.Now()
	if err := s.Repository.Update(ctx, friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}

// Remove deletes a friendship row. The requester may cancel a pending
// request; either side may undo an accepted one.
func (s *Service) Remove(ctx context.Context, userID, friendshipID ulid.ULID) error {
	friendship, err := s.Repository.GetById(ctx, friendshipID)
	if err != nil {
		return err
	}

	if !friendship.Involves(userID) {
		return appErrors.ErrResourceNotOwned
	}
	if friendship.Status == StatusPending && friendship.RequesterId != userID {
		return appErrors.ErrResourceNotOwned
	}

	return s.Repository.Delete(ctx, friendship.Id)
}

// ListFriends returns one page of accepted friendships with each friend's
// public pet summary. A friend without a pet just has the field omitted.
func (s *Service) ListFriends(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]FriendView, int64, error) {
	rows, total, err := s.Repository.ListByUser(ctx, userID, StatusAccepted, pagination)
	if err != nil {
		return nil, 0, err
	}

	views := make([]FriendView, 0, len(rows))
	for _, row := range rows {
		friendID := row.Other(userID)
		friend, err := s.Users.GetById(ctx, friendID)
		if err != nil {
			logger.Warn().Str("user_id", friendID.String()).Err(err).Msg("friend row points at missing user")
			continue
		}

		view := FriendView{
			FriendshipId: row.Id,
			UserId:       friend.Id,
			Name:         friend.Name,
			Email:        friend.Email,
			Since:        row.UpdatedAt,
		}
		if friendPet, err := s.Pets.GetByUserId(ctx, friendID); err == nil {
			friendPet.ApplyDecay(time.Now())
			view.Pet = &FriendPet{
				Name:    friendPet.Name,
				Species: friendPet.Species,
				Level:   friendPet.Level,
				Mood:    friendPet.Mood(),
			}
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ListPending returns requests waiting on the user's answer.
func (s *Service) ListPending(ctx context.Context, userID ulid.ULID) ([]PendingRequestView, error) {
	rows, err := s.Repository.ListPendingForAddressee(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]PendingRequestView, 0, len(rows))
	for _, row := range rows {
		requester, err := s.Users.GetById(ctx, row.RequesterId)
		if err != nil {
			logger.Warn().Str("user_id", row.RequesterId.String()).Err(err).Msg("request row points at missing user")
			continue
		}
		views = append(views, PendingRequestView{
			FriendshipId: row.Id,
			RequesterId:  requester.Id,
			Name:         requester.Name,
			Email:        requester.Email,
			RequestedAt:  row.CreatedAt,
		})
	}
	return views, nil
}
