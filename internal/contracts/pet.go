package contracts

import "time"

type PetResponse struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Level        int       `json:"level"`
	XP           int       `json:"xp"`
	Coins        int       `json:"coins"`
	Hunger       int       `json:"hunger"`
	Happiness    int       `json:"happiness"`
	Mood         string    `json:"mood"`
	LastFedAt    time.Time `json:"lastFedAt"`
	LastPlayedAt time.Time `json:"lastPlayedAt"`
}

type PetRenameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
