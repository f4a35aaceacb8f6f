package pet_test

import (
	"testing"
	"time"

	"Petfolio/internal/domain/pet"
)

func newPet(now time.Time) *pet.Pet {
	return &pet.Pet{
		Name:         "Momo",
		Species:      pet.SpeciesCat,
		Level:        1,
		Hunger:       20,
		Happiness:    80,
		LastFedAt:    now,
		LastPlayedAt: now,
	}
}

func TestApplyDecay(t *testing.T) {
	now := time.Now()
	p := newPet(now.Add(-5 * time.Hour))

	p.ApplyDecay(now)

	if p.Hunger != 40 {
		t.Errorf("Hunger = %d, want 40 (20 + 5h*4)", p.Hunger)
	}
	if p.Happiness != 70 {
		t.Errorf("Happiness = %d, want 70 (80 - 5h*2)", p.Happiness)
	}
}

func TestApplyDecay_Clamped(t *testing.T) {
	now := time.Now()
	p := newPet(now.Add(-100 * time.Hour))

	p.ApplyDecay(now)

	if p.Hunger != 100 {
		t.Errorf("Hunger = %d, want clamp at 100", p.Hunger)
	}
	if p.Happiness != 0 {
		t.Errorf("Happiness = %d, want clamp at 0", p.Happiness)
	}
}

func TestApplyDecay_SubHourIsNoop(t *testing.T) {
	now := time.Now()
	p := newPet(now.Add(-30 * time.Minute))

	p.ApplyDecay(now)

	if p.Hunger != 20 || p.Happiness != 80 {
		t.Errorf("got hunger %d happiness %d, want untouched 20/80", p.Hunger, p.Happiness)
	}
}

func TestApplyDecay_ConsumesWholeHours(t *testing.T) {
	now := time.Now()
	anchor := now.Add(-90 * time.Minute)
	p := newPet(anchor)

	p.ApplyDecay(now)

	// One hour charged, the 30-minute remainder stays on the anchors.
	want := anchor.Add(time.Hour)
	if !p.LastFedAt.Equal(want) {
		t.Errorf("LastFedAt = %v, want %v", p.LastFedAt, want)
	}
	if !p.LastPlayedAt.Equal(want) {
		t.Errorf("LastPlayedAt = %v, want %v", p.LastPlayedAt, want)
	}

	// Applying again immediately must not charge the same hour twice.
	p.ApplyDecay(now)
	if p.Hunger != 24 || p.Happiness != 78 {
		t.Errorf("got hunger %d happiness %d after re-apply, want 24/78", p.Hunger, p.Happiness)
	}
}

func TestAddXP_LevelUp(t *testing.T) {
	p := newPet(time.Now())

	// Level 2 starts at 100 XP, level 3 at 250.
	if leveled := p.AddXP(99); leveled {
		t.Error("AddXP(99) leveled up, want stay at level 1")
	}
	if leveled := p.AddXP(1); !leveled {
		t.Error("AddXP to exactly 100 did not level up")
	}
	if p.Level != 2 {
		t.Errorf("Level = %d, want 2", p.Level)
	}

	if leveled := p.AddXP(150); !leveled {
		t.Error("AddXP to 250 did not reach level 3")
	}
	if p.Level != 3 {
		t.Errorf("Level = %d, want 3", p.Level)
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{450, 4},
	}
	for _, tc := range cases {
		if got := pet.LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestMood(t *testing.T) {
	cases := []struct {
		name      string
		hunger    int
		happiness int
		want      string
	}{
		{"starving wins over sadness", 85, 10, "starving"},
		{"sad", 50, 15, "sad"},
		{"thriving", 30, 75, "thriving"},
		{"content", 50, 50, "content"},
	}
	for _, tc := range cases {
		p := &pet.Pet{Hunger: tc.hunger, Happiness: tc.happiness}
		if got := p.Mood(); got != tc.want {
			t.Errorf("%s: Mood() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
