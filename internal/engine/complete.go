package engine

import (
	"context"

	"go.uber.org/zap"
)

// CompleteResult reports what one lesson completion changed.
type CompleteResult struct {
	LessonID    string
	XPAwarded   int
	Boosted     bool
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Tokens      int
	BonusTokens int
	Streak      int
	FreezeUsed  bool
	FirstClear  bool
}

// CompleteLesson applies one successful lesson completion: streak delta,
// boosted XP and level recompute, token award with the world-clear bonus on
// first completion of a world's final lesson, and daily-quest progress.
// Unknown lesson or world ids are tolerated; the bonus simply never fires.
func (s *Service) CompleteLesson(ctx context.Context, lessonID string, baseXP, baseTokens int, worldID string) (*CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.progress
	now := s.clock()
	levelBefore := LevelForXP(p.XP)

	streak, freezes := nextStreak(p.Streak, p.StreakFreezes, p.LastCompletedDate, now)
	freezeUsed := freezes < p.StreakFreezes

	boosted := BoostActive(p.XPBoosts, now)
	earnedXP := BoostedXP(baseXP, p.XPBoosts, now)

	// First-completion check happens before the set is mutated; the bonus
	// must fire exactly once per lesson.
	firstClear := !lessonCompleted(p, lessonID)
	bonusTokens := 0
	if firstClear {
		if w, ok := FindWorld(worldID); ok && lessonID == finalLessonID(w) {
			bonusTokens = WorldClearBonusTokens
		}
	}

	p.XP += earnedXP
	p.Level = LevelForXP(p.XP)
	p.Tokens += baseTokens + bonusTokens
	p.Streak = streak
	p.StreakFreezes = freezes
	p.LastCompletedDate = now.Format(DateLayout)
	if firstClear {
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
	}
	p.DailyQuests.Quests = advanceQuests(p.DailyQuests.Quests, earnedXP)
	p.League.XP += earnedXP

	s.progress = p
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	res := &CompleteResult{
		LessonID:    lessonID,
		XPAwarded:   earnedXP,
		Boosted:     boosted,
		LevelBefore: levelBefore,
		LevelAfter:  p.Level,
		LevelUp:     p.Level > levelBefore,
		Tokens:      baseTokens,
		BonusTokens: bonusTokens,
		Streak:      p.Streak,
		FreezeUsed:  freezeUsed,
		FirstClear:  firstClear,
	}
	s.log.Debug("lesson completed",
		zap.String("lesson", lessonID),
		zap.Int("xp", res.XPAwarded),
		zap.Int("streak", res.Streak),
		zap.Bool("first_clear", res.FirstClear))
	return res, nil
}

// ClaimQuestReward credits a finished quest's tokens. It is a no-op unless
// the quest exists, is unclaimed, and has reached its target; claiming twice
// leaves the state exactly as after the first claim.
func (s *Service) ClaimQuestReward(ctx context.Context, questID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quests := s.progress.DailyQuests.Quests
	for i := range quests {
		q := quests[i]
		if q.ID != questID || q.IsClaimed || q.Progress < q.Target {
			continue
		}
		quests[i].IsClaimed = true
		s.progress.Tokens += q.Reward.Tokens
		if err := s.persist(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
