package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"keyquest/internal/storage"
)

// Service is the authoritative state machine over UserProgress. Every
// operation computes the next state from the current snapshot under the
// mutex, persists the whole record, then publishes it; readers only ever
// see complete states.
type Service struct {
	store storage.SnapshotStore
	log   *zap.Logger

	clock func() time.Time
	rng   *rand.Rand

	mu       sync.Mutex
	progress storage.UserProgress
}

// NewService loads (and hydrates) the persisted progress and refreshes the
// daily quests if the stored stamp is not today.
func NewService(ctx context.Context, store storage.SnapshotStore, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := store.Load(ctx)
	if err != nil {
		// Hydration already fell back to defaults; a load error beyond that
		// is a real storage failure.
		return nil, err
	}

	s := &Service{
		store:    store,
		log:      log,
		clock:    time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		progress: p,
	}
	if err := s.RefreshDailyQuests(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Progress returns a copy of the current snapshot for display.
func (s *Service) Progress() storage.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// RefreshDailyQuests draws a fresh set of daily quests when the last refresh
// was not today. Called on load; harmless to call again at date rollover.
func (s *Service) RefreshDailyQuests(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock().Format(DateLayout)
	if s.progress.DailyQuests.LastRefreshed == today {
		return nil
	}
	s.progress.DailyQuests = storage.DailyQuests{
		Quests:        drawDailyQuests(s.rng),
		LastRefreshed: today,
	}
	s.log.Debug("daily quests refreshed", zap.String("date", today))
	return s.persist(ctx)
}

// persist writes the full snapshot. Callers hold s.mu.
func (s *Service) persist(ctx context.Context) error {
	return s.store.Save(ctx, s.progress)
}
