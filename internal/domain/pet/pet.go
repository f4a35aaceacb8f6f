package pet

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Species string

const (
	SpeciesCat    Species = "CAT"
	SpeciesDog    Species = "DOG"
	SpeciesFox    Species = "FOX"
	SpeciesDragon Species = "DRAGON"
)

func (s Species) IsValid() bool {
	switch s {
	case SpeciesCat, SpeciesDog, SpeciesFox, SpeciesDragon:
		return true
	}
	return false
}

type Pet struct {
	Id           ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId       ulid.ULID `gorm:"type:varchar(26);uniqueIndex:idx_pets_user_id;not null" json:"userId"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Species      Species   `gorm:"type:varchar(10);not null;default:'CAT'" json:"species"`
	Level        int       `gorm:"not null;default:1" json:"level"`
	XP           int       `gorm:"not null;default:0" json:"xp"`
	Coins        int       `gorm:"not null;default:0" json:"coins"`
	Hunger       int       `gorm:"not null;default:20" json:"hunger"`
	Happiness    int       `gorm:"not null;default:80" json:"happiness"`
	LastFedAt    time.Time `gorm:"type:timestamp" json:"lastFedAt"`
	LastPlayedAt time.Time `gorm:"type:timestamp" json:"lastPlayedAt"`
	CreatedAt    time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Pet) TableName() string {
	return "pets"
}

// Decay rates per elapsed hour.
const (
	hungerPerHour    = 4
	happinessPerHour = 2
)

// ApplyDecay advances hunger and happiness to now, clamped to 0..100. Each
// consumed hour also moves its anchor forward, so a decayed pet can be
// persisted without the same hours being charged again on the next read. The
// sub-hour remainder stays on the anchor.
func (p *Pet) ApplyDecay(now time.Time) {
	if hours := int(now.Sub(p.LastFedAt).Hours()); hours > 0 {
		p.Hunger = clamp(p.Hunger + hours*hungerPerHour)
		p.LastFedAt = p.LastFedAt.Add(time.Duration(hours) * time.Hour)
	}
	if hours := int(now.Sub(p.LastPlayedAt).Hours()); hours > 0 {
		p.Happiness = clamp(p.Happiness - hours*happinessPerHour)
		p.LastPlayedAt = p.LastPlayedAt.Add(time.Duration(hours) * time.Hour)
	}
}

// AddXP accumulates experience and recomputes the level. Returns true when
// the pet leveled up.
func (p *Pet) AddXP(xp int) bool {
	p.XP += xp
	newLevel := LevelForXP(p.XP)
	if newLevel > p.Level {
		p.Level = newLevel
		return true
	}
	return false
}

// Mood is a derived label for the client, no persistence.
func (p *Pet) Mood() string {
	switch {
	case p.Hunger >= 80:
		return "starving"
	case p.Happiness <= 20:
		return "sad"
	case p.Happiness >= 70 && p.Hunger <= 40:
		return "thriving"
	default:
		return "content"
	}
}

type LevelThreshold struct {
	Level int
	MinXP int
}

// Roughly quadratic: each level costs 50 more XP than the previous one.
var LevelThresholds = buildLevelThresholds(50)

func buildLevelThresholds(maxLevel int) []LevelThreshold {
	thresholds := make([]LevelThreshold, 0, maxLevel)
	xp := 0
	for level := 1; level <= maxLevel; level++ {
		thresholds = append(thresholds, LevelThreshold{Level: level, MinXP: xp})
		xp += 100 + (level-1)*50
	}
	return thresholds
}

func LevelForXP(xp int) int {
	level := 1
	for _, t := range LevelThresholds {
		if xp >= t.MinXP {
			level = t.Level
		} else {
			break
		}
	}
	return level
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
