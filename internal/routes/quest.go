package routes

import (
	"net/http"

	"Petfolio/internal/contracts"
	"Petfolio/internal/domain/quest"
	appErrors "Petfolio/internal/errors"

	"github.com/gin-gonic/gin"
)

func toQuestResponse(v quest.View) contracts.QuestResponse {
	return contracts.QuestResponse{
		Code:        v.Code,
		Title:       v.Title,
		Description: v.Description,
		Cadence:     string(v.Cadence),
		Target:      v.Target,
		Count:       v.Count,
		Status:      string(v.Status),
		RewardCoins: v.RewardCoins,
		RewardXP:    v.RewardXP,
		ClaimedAt:   v.ClaimedAt,
	}
}

func (h *Handler) ListQuests(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	views, err := h.QuestService.List(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]contracts.QuestResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, toQuestResponse(v))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) ClaimQuest(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.respondError(c, appErrors.NewValidationError("code", "is required"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	row, err := h.QuestService.Claim(ctx, userID, code)
	if err != nil {
		h.respondError(c, err)
		return
	}

	def, _ := quest.FindDefinition(row.QuestCode)
	c.JSON(http.StatusOK, contracts.QuestClaimResponse{
		Code:        row.QuestCode,
		RewardCoins: def.RewardCoins,
		RewardXP:    def.RewardXP,
		Message:     "Reward claimed",
	})
}
