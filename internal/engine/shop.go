package engine

// ItemKind tells the purchase path which effect to apply.
type ItemKind string

const (
	ItemStreakFreeze ItemKind = "streak_freeze"
	ItemXPBoost      ItemKind = "xp_boost"
	ItemClassCredit  ItemKind = "class_credit"
	ItemTheme        ItemKind = "theme"
)

type ShopItem struct {
	ID   string
	Name string
	Cost int
	Kind ItemKind
}

// ShopCatalog is the fixed shop: perks plus cosmetic themes. The default
// theme is listed for completeness; everyone owns it from the start.
func ShopCatalog() []ShopItem {
	return []ShopItem{
		{ID: "streak_freeze", Name: "Streak Freeze", Cost: 100, Kind: ItemStreakFreeze},
		{ID: "xp_boost", Name: "XP Boost (10 min)", Cost: 250, Kind: ItemXPBoost},
		{ID: "class_credit", Name: "Class Credit", Cost: 2000, Kind: ItemClassCredit},
		{ID: "default", Name: "Default", Cost: 0, Kind: ItemTheme},
		{ID: "sunset", Name: "Sunset Groove", Cost: 500, Kind: ItemTheme},
		{ID: "ocean", Name: "Ocean Calm", Cost: 500, Kind: ItemTheme},
		{ID: "forest", Name: "Forest Mist", Cost: 500, Kind: ItemTheme},
	}
}

// ItemByID looks an item up in the catalog.
func ItemByID(id string) (ShopItem, bool) {
	for _, item := range ShopCatalog() {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
