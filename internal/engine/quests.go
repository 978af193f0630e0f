package engine

import (
	"math/rand"

	"keyquest/internal/storage"
)

// DailyQuestCount is how many quests are drawn each day.
const DailyQuestCount = 3

// QuestPool is the fixed catalog daily quests are drawn from.
func QuestPool() []storage.Quest {
	return []storage.Quest{
		{ID: "q1", Type: storage.QuestEarnXP, Description: "Earn 100 XP", Target: 100, Reward: storage.QuestReward{Tokens: 10}},
		{ID: "q2", Type: storage.QuestCompleteLessons, Description: "Complete 2 lessons", Target: 2, Reward: storage.QuestReward{Tokens: 15}},
		{ID: "q3", Type: storage.QuestEarnXP, Description: "Earn 250 XP", Target: 250, Reward: storage.QuestReward{Tokens: 25}},
		{ID: "q4", Type: storage.QuestCompleteLessons, Description: "Complete 3 lessons", Target: 3, Reward: storage.QuestReward{Tokens: 30}},
		{ID: "q5", Type: storage.QuestEarnXP, Description: "Earn 50 XP in one lesson", Target: 50, Reward: storage.QuestReward{Tokens: 5}},
	}
}

// drawDailyQuests picks DailyQuestCount quests at random without
// replacement, reset to zero progress and unclaimed.
func drawDailyQuests(rng *rand.Rand) []storage.Quest {
	pool := QuestPool()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	n := DailyQuestCount
	if n > len(pool) {
		n = len(pool)
	}
	quests := pool[:n]
	for i := range quests {
		quests[i].Progress = 0
		quests[i].IsClaimed = false
	}
	return quests
}

// advanceQuests credits one lesson completion (and its boosted XP) to every
// unclaimed quest, clamping progress at the target.
func advanceQuests(quests []storage.Quest, earnedXP int) []storage.Quest {
	out := make([]storage.Quest, len(quests))
	copy(out, quests)
	for i := range out {
		if out[i].IsClaimed {
			continue
		}
		switch out[i].Type {
		case storage.QuestEarnXP:
			out[i].Progress += earnedXP
		case storage.QuestCompleteLessons:
			out[i].Progress++
		}
		if out[i].Progress > out[i].Target {
			out[i].Progress = out[i].Target
		}
	}
	return out
}
