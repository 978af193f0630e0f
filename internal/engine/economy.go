package engine

import (
	"context"

	"go.uber.org/zap"
)

// PurchaseItem debits tokens and applies the item effect. The purchase is
// rejected (false, no state change) when the item is unknown, tokens are
// insufficient, or a cosmetic is already owned. Rejection is a normal
// outcome, not an error; the UI disables what the player cannot afford.
func (s *Service) PurchaseItem(ctx context.Context, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := ItemByID(itemID)
	if !ok {
		return false, nil
	}
	if s.progress.Tokens < item.Cost {
		return false, nil
	}

	switch item.Kind {
	case ItemStreakFreeze:
		s.progress.StreakFreezes++
	case ItemXPBoost:
		s.progress.XPBoosts = ExtendBoost(s.progress.XPBoosts, s.clock())
	case ItemClassCredit:
		s.progress.ClassCredits++
	case ItemTheme:
		if s.ownsTheme(item.ID) {
			return false, nil
		}
		s.progress.Inventory.Themes = append(s.progress.Inventory.Themes, item.ID)
	default:
		return false, nil
	}

	s.progress.Tokens -= item.Cost
	if err := s.persist(ctx); err != nil {
		return false, err
	}
	s.log.Debug("item purchased", zap.String("item", item.ID), zap.Int("cost", item.Cost))
	return true, nil
}

// SendGift hands one item from the player's inventory to a friend. Only
// streak freezes can be gifted; the recipient side is a stub since there is
// no multi-user backend.
func (s *Service) SendGift(ctx context.Context, friendID string, kind ItemKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind != ItemStreakFreeze || s.progress.StreakFreezes <= 0 {
		return false, nil
	}
	s.progress.StreakFreezes--
	if err := s.persist(ctx); err != nil {
		return false, err
	}
	s.log.Debug("gift sent", zap.String("friend", friendID), zap.String("item", string(kind)))
	return true, nil
}

// EquipTheme activates an owned cosmetic; unknown or unowned ids are no-ops,
// so activeTheme always stays inside the owned set.
func (s *Service) EquipTheme(ctx context.Context, themeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ownsTheme(themeID) || s.progress.ActiveTheme == themeID {
		return nil
	}
	s.progress.ActiveTheme = themeID
	return s.persist(ctx)
}

// ownsTheme reports cosmetic ownership. Callers hold s.mu.
func (s *Service) ownsTheme(themeID string) bool {
	for _, id := range s.progress.Inventory.Themes {
		if id == themeID {
			return true
		}
	}
	return false
}
