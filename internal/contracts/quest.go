package contracts

import "time"

type QuestResponse struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cadence     string     `json:"cadence"`
	Target      int        `json:"target"`
	Count       int        `json:"count"`
	Status      string     `json:"status"`
	RewardCoins int        `json:"rewardCoins"`
	RewardXP    int        `json:"rewardXp"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
}

type QuestClaimResponse struct {
	Code        string `json:"code"`
	RewardCoins int    `json:"rewardCoins"`
	RewardXP    int    `json:"rewardXp"`
	Message     string `json:"message"`
}
