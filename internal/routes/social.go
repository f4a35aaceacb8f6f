package routes

import (
	"net/http"

	"Petfolio/internal/contracts"
	"Petfolio/internal/domain/social"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/logger"
	"Petfolio/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func toFriendshipResponse(f *social.Friendship) contracts.FriendshipResponse {
	return contracts.FriendshipResponse{
		Id:          f.Id.String(),
		RequesterId: f.RequesterId.String(),
		AddresseeId: f.AddresseeId.String(),
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (h *Handler) parseFriendshipID(c *gin.Context) (ulid.ULID, error) {
	id := c.Param("id")
	if id == "" {
		return ulid.ULID{}, appErrors.NewValidationError("id", "is required")
	}
	friendshipID, err := pkg.ParseULID(id)
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError("id", "invalid format")
	}
	return friendshipID, nil
}

func (h *Handler) SendFriendRequest(c *gin.Context) {
	var body contracts.FriendRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	friendship, err := h.SocialService.SendRequest(ctx, userID, body.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFriendshipResponse(friendship))
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	friendshipID, err := h.parseFriendshipID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	friendship, err := h.SocialService.Accept(ctx, userID, friendshipID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Both sides made a friend.
	for _, id := range []ulid.ULID{friendship.RequesterId, friendship.AddresseeId} {
		if _, err := h.QuestService.Increment(ctx, id, "make_friend", 1); err != nil {
			logger.Warn().Err(err).Str("quest", "make_friend").Msg("failed to record quest progress")
		}
	}

	c.JSON(http.StatusOK, toFriendshipResponse(friendship))
}

func (h *Handler) DeclineFriendRequest(c *gin.Context) {
	friendshipID, err := h.parseFriendshipID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	friendship, err := h.SocialService.Decline(ctx, userID, friendshipID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFriendshipResponse(friendship))
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	friendshipID, err := h.parseFriendshipID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.SocialService.Remove(ctx, userID, friendshipID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Friendship removed"})
}

func (h *Handler) ListFriends(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	ctx := c.Request.Context()
	views, total, err := h.SocialService.ListFriends(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]contracts.FriendResponse, 0, len(views))
	for _, v := range views {
		response := contracts.FriendResponse{
			FriendshipId: v.FriendshipId.String(),
			UserId:       v.UserId.String(),
			Name:         v.Name,
			Email:        v.Email,
			Since:        v.Since,
		}
		if v.Pet != nil {
			response.Pet = &contracts.FriendPetResponse{
				Name:    v.Pet.Name,
				Species: string(v.Pet.Species),
				Level:   v.Pet.Level,
				Mood:    v.Pet.Mood,
			}
		}
		responses = append(responses, response)
	}
	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(responses, pagination.Page, pagination.Limit, total))
}

func (h *Handler) ListPendingRequests(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	views, err := h.SocialService.ListPending(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]contracts.PendingRequestResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, contracts.PendingRequestResponse{
			FriendshipId: v.FriendshipId.String(),
			RequesterId:  v.RequesterId.String(),
			Name:         v.Name,
			Email:        v.Email,
			RequestedAt:  v.RequestedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}
