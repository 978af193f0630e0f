package storage

// UserProgress is the single persisted aggregate. The JSON tags define the
// snapshot schema; hydration merges persisted snapshots over the defaults
// field by field, so fields can be added here without breaking old saves.
type UserProgress struct {
	HasOnboarded         bool        `json:"hasOnboarded"`
	XP                   int         `json:"xp"`
	Level                int         `json:"level"`
	Tokens               int         `json:"tokens"`
	Streak               int         `json:"streak"`
	LastCompletedDate    string      `json:"lastCompletedDate"`
	CompletedLessons     []string    `json:"completedLessons"`
	UnlockedAchievements []string    `json:"unlockedAchievements"`
	IsDevMode            bool        `json:"isDevMode"`
	Nickname             string      `json:"nickname"`
	Avatar               string      `json:"avatar"`
	StreakFreezes        int         `json:"streakFreezes"`
	XPBoosts             XPBoosts    `json:"xpBoosts"`
	ClassCredits         int         `json:"classCredits"`
	Friends              []Friend    `json:"friends"`
	DailyQuests          DailyQuests `json:"dailyQuests"`
	League               League      `json:"league"`
	Inventory            Inventory   `json:"inventory"`
	ActiveTheme          string      `json:"activeTheme"`
}

// XPBoosts tracks purchased boosts and the active multiplier window.
// ActiveUntil is RFC 3339, empty when no boost has ever been active.
type XPBoosts struct {
	Count       int    `json:"count"`
	ActiveUntil string `json:"activeUntil"`
}

type QuestType string

const (
	QuestEarnXP          QuestType = "earn_xp"
	QuestCompleteLessons QuestType = "complete_lessons"
)

type QuestReward struct {
	Tokens int `json:"tokens"`
}

type Quest struct {
	ID          string      `json:"id"`
	Type        QuestType   `json:"type"`
	Description string      `json:"description"`
	Target      int         `json:"target"`
	Reward      QuestReward `json:"reward"`
	Progress    int         `json:"progress"`
	IsClaimed   bool        `json:"isClaimed"`
}

// DailyQuests regenerate once per calendar day. LastRefreshed is a
// YYYY-MM-DD date, empty before the first refresh.
type DailyQuests struct {
	Quests        []Quest `json:"quests"`
	LastRefreshed string  `json:"lastRefreshed"`
}

type Friend struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar"`
}

type League struct {
	Tier           string `json:"tier"`
	XP             int    `json:"xp"`
	LastCalculated string `json:"lastCalculated"`
}

type Inventory struct {
	Themes []string `json:"themes"`
}

// DefaultProgress is the state of a brand-new player. Hydration never
// returns less than this.
func DefaultProgress() UserProgress {
	return UserProgress{
		Level:            1,
		Nickname:         "New Pianist",
		Avatar:           "🎹",
		CompletedLessons: []string{},
		Friends: []Friend{
			{ID: "f1", Name: "Rhythmbot", XP: 15200, Avatar: "🤖"},
			{ID: "f2", Name: "Melody", XP: 9800, Avatar: "😇"},
			{ID: "f3", Name: "Harmony", XP: 7500, Avatar: "🤗"},
		},
		DailyQuests: DailyQuests{Quests: []Quest{}},
		League:      League{Tier: "Bronze"},
		Inventory:   Inventory{Themes: []string{"default"}},
		ActiveTheme: "default",
	}
}
