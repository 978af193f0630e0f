package engine

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"keyquest/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	svc, err := NewService(ctx, store, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.rng = rand.New(rand.NewSource(1))
	cleanup := func() {
		_ = store.Close()
	}
	return svc, cleanup
}

func fixClock(svc *Service, at time.Time) {
	svc.clock = func() time.Time { return at }
}

func TestLevelMatchesXPAfterEveryCompletion(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := svc.CompleteLesson(ctx, "l1-1", 150, 1, "w1"); err != nil {
			t.Fatalf("complete #%d: %v", i+1, err)
		}
		p := svc.Progress()
		want := p.XP/XPPerLevel + 1
		if p.Level != want {
			t.Fatalf("after %d completions: level=%d, want %d (xp=%d)", i+1, p.Level, want, p.XP)
		}
	}
}

func TestStreakFirstCompletionEver(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	res, err := svc.CompleteLesson(context.Background(), "l1-1", 50, 1, "w1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1", res.Streak)
	}
}

func TestStreakConsecutiveDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	fixClock(svc, now)
	svc.progress.Streak = 4
	svc.progress.LastCompletedDate = now.AddDate(0, 0, -1).Format(DateLayout)

	res, err := svc.CompleteLesson(ctx, "l1-1", 50, 1, "w1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Streak != 5 {
		t.Fatalf("streak=%d, want 5", res.Streak)
	}

	// A second completion the same day leaves the streak alone.
	res2, err := svc.CompleteLesson(ctx, "l1-2", 50, 1, "w1")
	if err != nil {
		t.Fatalf("complete same day: %v", err)
	}
	if res2.Streak != 5 {
		t.Fatalf("same-day streak=%d, want 5", res2.Streak)
	}
}

func TestStreakGapWithoutFreezeResets(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	fixClock(svc, now)
	svc.progress.Streak = 5
	svc.progress.StreakFreezes = 0
	svc.progress.LastCompletedDate = now.AddDate(0, 0, -3).Format(DateLayout)

	res, err := svc.CompleteLesson(context.Background(), "l1-1", 50, 1, "w1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1 after unprotected gap", res.Streak)
	}
}

func TestStreakGapWithFreezeHolds(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	fixClock(svc, now)
	svc.progress.Streak = 5
	svc.progress.StreakFreezes = 1
	svc.progress.LastCompletedDate = now.AddDate(0, 0, -3).Format(DateLayout)

	res, err := svc.CompleteLesson(context.Background(), "l1-1", 50, 1, "w1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Streak != 5 {
		t.Fatalf("streak=%d, want 5 (freeze should hold it)", res.Streak)
	}
	if !res.FreezeUsed {
		t.Fatalf("expected FreezeUsed=true")
	}
	if got := svc.Progress().StreakFreezes; got != 0 {
		t.Fatalf("freezes=%d, want 0", got)
	}
}

func TestXPBoostMultipliesAndExtends(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	fixClock(svc, now)
	svc.progress.Tokens = 600

	ok, err := svc.PurchaseItem(ctx, "xp_boost")
	if err != nil || !ok {
		t.Fatalf("buy boost: ok=%v err=%v", ok, err)
	}
	res, err := svc.CompleteLesson(ctx, "l1-1", 75, 1, "w1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !res.Boosted || res.XPAwarded != 113 { // round(75 * 1.5)
		t.Fatalf("boosted xp=%d (boosted=%v), want 113", res.XPAwarded, res.Boosted)
	}

	// Buying again while active extends from the window end, not from now.
	ok, err = svc.PurchaseItem(ctx, "xp_boost")
	if err != nil || !ok {
		t.Fatalf("buy second boost: ok=%v err=%v", ok, err)
	}
	until, err := time.Parse(time.RFC3339, svc.Progress().XPBoosts.ActiveUntil)
	if err != nil {
		t.Fatalf("parse activeUntil: %v", err)
	}
	if want := now.Add(2 * BoostDuration); !until.Equal(want) {
		t.Fatalf("activeUntil=%v, want %v", until, want)
	}

	// After the window lapses the award is unboosted.
	fixClock(svc, now.Add(3*BoostDuration))
	res, err = svc.CompleteLesson(ctx, "l1-1", 75, 1, "w1")
	if err != nil {
		t.Fatalf("complete after lapse: %v", err)
	}
	if res.Boosted || res.XPAwarded != 75 {
		t.Fatalf("xp=%d (boosted=%v), want plain 75", res.XPAwarded, res.Boosted)
	}
}

func TestWorldClearBonusFiresOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := svc.CompleteLesson(ctx, "l1-10", 150, 1, "w1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.BonusTokens != WorldClearBonusTokens {
		t.Fatalf("bonus=%d, want %d", res.BonusTokens, WorldClearBonusTokens)
	}
	if !res.FirstClear {
		t.Fatalf("expected FirstClear=true")
	}

	res, err = svc.CompleteLesson(ctx, "l1-10", 150, 1, "w1")
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if res.BonusTokens != 0 || res.FirstClear {
		t.Fatalf("repeat completion: bonus=%d firstClear=%v, want 0/false", res.BonusTokens, res.FirstClear)
	}

	// A mid-world lesson never grants the bonus.
	res, err = svc.CompleteLesson(ctx, "l1-1", 50, 1, "w1")
	if err != nil {
		t.Fatalf("mid-world complete: %v", err)
	}
	if res.BonusTokens != 0 {
		t.Fatalf("mid-world bonus=%d, want 0", res.BonusTokens)
	}
}

func TestQuestProgressClampsAndClaims(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	svc.progress.DailyQuests.Quests = []storage.Quest{
		{ID: "q5", Type: storage.QuestEarnXP, Target: 50, Reward: storage.QuestReward{Tokens: 5}},
		{ID: "q2", Type: storage.QuestCompleteLessons, Target: 2, Reward: storage.QuestReward{Tokens: 15}},
	}

	if _, err := svc.CompleteLesson(ctx, "l1-2", 75, 1, "w1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	quests := svc.Progress().DailyQuests.Quests
	if quests[0].Progress != 50 {
		t.Fatalf("xp quest progress=%d, want clamp at 50", quests[0].Progress)
	}
	if quests[1].Progress != 1 {
		t.Fatalf("lesson quest progress=%d, want 1", quests[1].Progress)
	}

	// Unfinished quest cannot be claimed.
	claimed, err := svc.ClaimQuestReward(ctx, "q2")
	if err != nil {
		t.Fatalf("claim unfinished: %v", err)
	}
	if claimed {
		t.Fatalf("claimed an unfinished quest")
	}

	tokensBefore := svc.Progress().Tokens
	claimed, err = svc.ClaimQuestReward(ctx, "q5")
	if err != nil || !claimed {
		t.Fatalf("claim q5: claimed=%v err=%v", claimed, err)
	}
	afterFirst := svc.Progress()
	if afterFirst.Tokens != tokensBefore+5 {
		t.Fatalf("tokens=%d, want %d", afterFirst.Tokens, tokensBefore+5)
	}

	// Claiming again changes nothing.
	claimed, err = svc.ClaimQuestReward(ctx, "q5")
	if err != nil {
		t.Fatalf("reclaim: %v", err)
	}
	if claimed {
		t.Fatalf("second claim reported success")
	}
	afterSecond := svc.Progress()
	if afterSecond.Tokens != afterFirst.Tokens {
		t.Fatalf("tokens changed on reclaim: %d -> %d", afterFirst.Tokens, afterSecond.Tokens)
	}

	// Unknown quest id is tolerated.
	if _, err := svc.ClaimQuestReward(ctx, "nope"); err != nil {
		t.Fatalf("unknown quest: %v", err)
	}
}

func TestPurchaseRejectedWhenUnaffordable(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	svc.progress.Tokens = 90
	ok, err := svc.PurchaseItem(ctx, "streak_freeze") // costs 100
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if ok {
		t.Fatalf("purchase succeeded with insufficient tokens")
	}
	p := svc.Progress()
	if p.Tokens != 90 || p.StreakFreezes != 0 {
		t.Fatalf("state changed on rejected purchase: tokens=%d freezes=%d", p.Tokens, p.StreakFreezes)
	}
}

func TestPurchaseAndEquipTheme(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	svc.progress.Tokens = 1200

	ok, err := svc.PurchaseItem(ctx, "sunset")
	if err != nil || !ok {
		t.Fatalf("buy sunset: ok=%v err=%v", ok, err)
	}
	if got := svc.Progress().Tokens; got != 700 {
		t.Fatalf("tokens=%d, want 700", got)
	}

	// Owned cosmetics cannot be bought again.
	ok, err = svc.PurchaseItem(ctx, "sunset")
	if err != nil {
		t.Fatalf("rebuy: %v", err)
	}
	if ok || svc.Progress().Tokens != 700 {
		t.Fatalf("rebuy of owned theme should be rejected")
	}

	if err := svc.EquipTheme(ctx, "sunset"); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if got := svc.Progress().ActiveTheme; got != "sunset" {
		t.Fatalf("activeTheme=%q, want sunset", got)
	}

	// Equipping an unowned theme is a no-op.
	if err := svc.EquipTheme(ctx, "ocean"); err != nil {
		t.Fatalf("equip unowned: %v", err)
	}
	if got := svc.Progress().ActiveTheme; got != "sunset" {
		t.Fatalf("activeTheme=%q, want sunset after no-op equip", got)
	}
}

func TestSendGiftNeedsInventory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ok, err := svc.SendGift(ctx, "f1", ItemStreakFreeze)
	if err != nil {
		t.Fatalf("gift: %v", err)
	}
	if ok {
		t.Fatalf("gift succeeded with empty inventory")
	}

	svc.progress.StreakFreezes = 1
	ok, err = svc.SendGift(ctx, "f1", ItemStreakFreeze)
	if err != nil || !ok {
		t.Fatalf("gift with freeze: ok=%v err=%v", ok, err)
	}
	if got := svc.Progress().StreakFreezes; got != 0 {
		t.Fatalf("freezes=%d, want 0", got)
	}
}

func TestDailyQuestsRefreshOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p := svc.Progress()
	if len(p.DailyQuests.Quests) != DailyQuestCount {
		t.Fatalf("quests=%d, want %d", len(p.DailyQuests.Quests), DailyQuestCount)
	}
	seen := map[string]bool{}
	for _, q := range p.DailyQuests.Quests {
		if seen[q.ID] {
			t.Fatalf("duplicate quest %s drawn", q.ID)
		}
		seen[q.ID] = true
		if q.Progress != 0 || q.IsClaimed {
			t.Fatalf("quest %s not reset: progress=%d claimed=%v", q.ID, q.Progress, q.IsClaimed)
		}
	}

	// Same day: refresh is a no-op even with progress accrued.
	if _, err := svc.CompleteLesson(ctx, "l1-1", 50, 1, "w1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before := svc.Progress().DailyQuests
	if err := svc.RefreshDailyQuests(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	after := svc.Progress().DailyQuests
	if len(after.Quests) != len(before.Quests) || after.Quests[0].Progress != before.Quests[0].Progress {
		t.Fatalf("same-day refresh replaced quests")
	}

	// Next day: a fresh draw with reset progress.
	fixClock(svc, svc.clock().AddDate(0, 0, 1))
	if err := svc.RefreshDailyQuests(ctx); err != nil {
		t.Fatalf("rollover refresh: %v", err)
	}
	rolled := svc.Progress().DailyQuests
	if rolled.LastRefreshed == before.LastRefreshed {
		t.Fatalf("lastRefreshed not updated")
	}
	for _, q := range rolled.Quests {
		if q.Progress != 0 || q.IsClaimed {
			t.Fatalf("rolled quest %s not reset", q.ID)
		}
	}
}

func TestLessonUnlockOrder(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p := svc.Progress()
	if !IsLessonUnlocked(p, "l1-1") {
		t.Fatalf("first lesson should start unlocked")
	}
	if IsLessonUnlocked(p, "l1-2") {
		t.Fatalf("l1-2 unlocked before l1-1 done")
	}
	if IsLessonUnlocked(p, "l2-1") {
		t.Fatalf("world 2 unlocked before world 1 cleared")
	}

	if _, err := svc.CompleteLesson(ctx, "l1-1", 50, 1, "w1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !IsLessonUnlocked(svc.Progress(), "l1-2") {
		t.Fatalf("l1-2 still locked after l1-1")
	}

	if _, err := svc.CompleteLesson(ctx, "l1-10", 150, 1, "w1"); err != nil {
		t.Fatalf("complete final: %v", err)
	}
	if !IsLessonUnlocked(svc.Progress(), "l2-1") {
		t.Fatalf("world 2 locked after world 1 cleared")
	}
}

func TestProgressSurvivesReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	store, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc, err := NewService(ctx, store, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.CompleteLesson(ctx, "l1-1", 500, 3, "w1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	want := svc.Progress()
	_ = store.Close()

	store2, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store2.Close()
	svc2, err := NewService(ctx, store2, nil)
	if err != nil {
		t.Fatalf("second service: %v", err)
	}
	got := svc2.Progress()
	if got.XP != want.XP || got.Level != want.Level || got.Streak != want.Streak {
		t.Fatalf("reload mismatch: got xp=%d level=%d streak=%d, want xp=%d level=%d streak=%d",
			got.XP, got.Level, got.Streak, want.XP, want.Level, want.Streak)
	}
	if len(got.CompletedLessons) != 1 || got.CompletedLessons[0] != "l1-1" {
		t.Fatalf("completedLessons=%v, want [l1-1]", got.CompletedLessons)
	}
}
