package quest

import (
	"crypto/sha256"
	"time"

	"github.com/oklog/ulid/v2"
)

type Cadence string

const (
	CadenceDaily  Cadence = "DAILY"
	CadenceWeekly Cadence = "WEEKLY"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusClaimed   Status = "CLAIMED"
)

// Definition is a built-in quest. The catalog is code, not data: only the
// per-user progress rows are persisted.
type Definition struct {
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Cadence     Cadence `json:"cadence"`
	Target      int     `json:"target"`
	RewardCoins int     `json:"rewardCoins"`
	RewardXP    int     `json:"rewardXp"`
}

var Definitions = []Definition{
	{Code: "feed_pet", Title: "Breakfast time", Description: "Feed your pet today", Cadence: CadenceDaily, Target: 1, RewardCoins: 10, RewardXP: 5},
	{Code: "play_with_pet", Title: "Playtime", Description: "Play with your pet 3 times today", Cadence: CadenceDaily, Target: 3, RewardCoins: 15, RewardXP: 10},
	{Code: "run_analysis", Title: "Money check-in", Description: "Run a budget analysis today", Cadence: CadenceDaily, Target: 1, RewardCoins: 20, RewardXP: 10},
	{Code: "weekly_analysis", Title: "Weekly review", Description: "Run 3 budget analyses this week", Cadence: CadenceWeekly, Target: 3, RewardCoins: 50, RewardXP: 30},
	{Code: "make_friend", Title: "Social butterfly", Description: "Make a new friend this week", Cadence: CadenceWeekly, Target: 1, RewardCoins: 40, RewardXP: 25},
	{Code: "keep_pet_happy", Title: "Good caretaker", Description: "Interact with your pet 10 times this week", Cadence: CadenceWeekly, Target: 10, RewardCoins: 60, RewardXP: 40},
}

func FindDefinition(code string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Code == code {
			return def, true
		}
	}
	return Definition{}, false
}

// Progress tracks one user's advance on one quest within one period.
type Progress struct {
	Id          ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId      ulid.ULID  `gorm:"type:varchar(26);not null;index:idx_quest_progress_user" json:"userId"`
	QuestCode   string     `gorm:"type:varchar(50);not null" json:"questCode"`
	PeriodStart time.Time  `gorm:"type:timestamp;not null" json:"periodStart"`
	Count       int        `gorm:"not null;default:0" json:"count"`
	Status      Status     `gorm:"type:varchar(10);not null;default:'ACTIVE'" json:"status"`
	ClaimedAt   *time.Time `gorm:"type:timestamp" json:"claimedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Progress) TableName() string {
	return "quest_progress"
}

// PeriodStartFor truncates now to the quest's reset boundary. Daily quests
// reset at UTC midnight, weekly ones on Monday UTC midnight.
func PeriodStartFor(cadence Cadence, now time.Time) time.Time {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if cadence == CadenceDaily {
		return day
	}
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// GenerateProgressID derives a stable ULID from the progress row's natural
// key, so get-or-create never races into duplicates.
func GenerateProgressID(userID ulid.ULID, questCode string, periodStart time.Time) ulid.ULID {
	hash := sha256.Sum256([]byte("quest_progress:" + userID.String() + ":" + questCode + ":" + periodStart.UTC().Format(time.RFC3339)))

	timestamp := ulid.Timestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	entropy := [10]byte{}
	copy(entropy[:], hash[:10])

	reader := &deterministicReader{data: entropy[:]}
	return ulid.MustNew(timestamp, reader)
}

type deterministicReader struct {
	data []byte
	pos  int
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if r.pos >= len(r.data) {
		r.pos = 0
	}

	n := copy(p, r.data[r.pos:])
	r.pos += n

	if r.pos >= len(r.data) {
		r.pos = 0
	}

	return n, nil
}
