package contracts

import "time"

type FriendRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type FriendPetResponse struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Level   int    `json:"level"`
	Mood    string `json:"mood"`
}

type FriendResponse struct {
	FriendshipId string             `json:"friendshipId"`
	UserId       string             `json:"userId"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Since        time.Time          `json:"since"`
	Pet          *FriendPetResponse `json:"pet,omitempty"`
}

type PendingRequestResponse struct {
	FriendshipId string    `json:"friendshipId"`
	RequesterId  string    `json:"requesterId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RequestedAt  time.Time `json:"requestedAt"`
}

type FriendshipResponse struct {
	Id          string    `json:"id"`
	RequesterId string    `json:"requesterId"`
	AddresseeId string    `json:"addresseeId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
