package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"keyquest/internal/storage"
)

// CompleteOnboarding marks the one-time intro flow as done.
func (s *Service) CompleteOnboarding(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress.HasOnboarded {
		return nil
	}
	s.progress.HasOnboarded = true
	return s.persist(ctx)
}

// UpdateProfile sets the display nickname and avatar. Blank fields keep
// their current value.
func (s *Service) UpdateProfile(ctx context.Context, nickname, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := strings.TrimSpace(nickname); n != "" {
		s.progress.Nickname = n
	}
	if a := strings.TrimSpace(avatar); a != "" {
		s.progress.Avatar = a
	}
	return s.persist(ctx)
}

// AddFriend appends a friend with a fresh id and a plausible score.
func (s *Service) AddFriend(ctx context.Context, name string) (storage.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	friend := storage.Friend{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		XP:     s.rng.Intn(2000),
		Avatar: "🙂",
	}
	s.progress.Friends = append(s.progress.Friends, friend)
	if err := s.persist(ctx); err != nil {
		return storage.Friend{}, err
	}
	return friend, nil
}

// FindFriend resolves a friend by id or (case-insensitive) name.
func (s *Service) FindFriend(ref string) (storage.Friend, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.progress.Friends {
		if f.ID == ref || strings.EqualFold(f.Name, ref) {
			return f, true
		}
	}
	return storage.Friend{}, false
}

// ToggleDevMode flips the developer switch; enabling it grants a large token
// balance for trying out the shop.
func (s *Service) ToggleDevMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.IsDevMode = !s.progress.IsDevMode
	if s.progress.IsDevMode {
		s.progress.Tokens = 100000
	}
	return s.persist(ctx)
}

// SetStreak is a dev tool; negative values are ignored.
func (s *Service) SetStreak(ctx context.Context, streak int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if streak < 0 {
		return nil
	}
	s.progress.Streak = streak
	return s.persist(ctx)
}
