package routes

import (
	"net/http"

	"Petfolio/internal/contracts"
	"Petfolio/internal/domain/advisor"
	"Petfolio/internal/domain/pet"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/logger"

	"github.com/gin-gonic/gin"
)

func toPetResponse(p *pet.Pet) contracts.PetResponse {
	return contracts.PetResponse{
		Id:           p.Id.String(),
		Name:         p.Name,
		Species:      string(p.Species),
		Level:        p.Level,
		XP:           p.XP,
		Coins:        p.Coins,
		Hunger:       p.Hunger,
		Happiness:    p.Happiness,
		Mood:         p.Mood(),
		LastFedAt:    p.LastFedAt,
		LastPlayedAt: p.LastPlayedAt,
	}
}

func (h *Handler) GetPet(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	entity, err := h.PetService.GetOrCreate(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPetResponse(entity))
}

func (h *Handler) RenamePet(c *gin.Context) {
	var body contracts.PetRenameRequest
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
	entity, err := h.PetService.Rename(ctx, userID, body.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPetResponse(entity))
}

func (h *Handler) FeedPet(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	entity, err := h.PetService.Feed(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.recordPetCareQuests(c, "feed_pet")
	c.JSON(http.StatusOK, toPetResponse(entity))
}

func (h *Handler) PlayWithPet(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	entity, err := h.PetService.Play(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.recordPetCareQuests(c, "play_with_pet")
	c.JSON(http.StatusOK, toPetResponse(entity))
}

func (h *Handler) WeeklyDigest(c *gin.Context) {
	var body contracts.WeeklyDigestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactions := make([]advisor.Transaction, 0, len(body.Transactions))
	for i, line := range body.Transactions {
		date, err := parseTransactionDate(line.Date)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("date", "must be an ISO date").
				WithDetails(map[string]interface{}{"index": i, "value": line.Date}))
			return
		}
		transactions = append(transactions, advisor.Transaction{
			Amount:      line.Amount,
			Category:    line.Category,
			Date:        date,
			Description: line.Description,
		})
	}

	ctx := c.Request.Context()
	digest, err := h.PetService.WeeklyDigest(ctx, userID, transactions, body.MonthlyBudget)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, digest)
}

// recordPetCareQuests advances the care quests tied to an interaction.
// Best effort only.
func (h *Handler) recordPetCareQuests(c *gin.Context, code string) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		return
	}

	ctx := c.Request.Context()
	for _, quest := range []string{code, "keep_pet_happy"} {
		if _, err := h.QuestService.Increment(ctx, userID, quest, 1); err != nil {
			logger.Warn().Err(err).Str("quest", quest).Msg("failed to record quest progress")
		}
	}
}
