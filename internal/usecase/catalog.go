package usecase

import "svw.info/birthdayos/internal/domain"

var catalog = []domain.Charm{
	{ID: "digi-pet", Name: "Digi Pet", Icon: "egg", Power: "Never lets you feel alone", Points: 175, IconBgColor: "#ffe4f2", IconColor: "#d6336c"},
	{ID: "mixtape", Name: "Mixtape", Icon: "cassette", Power: "Every song is the right song", Points: 120, IconBgColor: "#e7f5ff", IconColor: "#1c7ed6"},
	{ID: "flip-phone", Name: "Flip Phone", Icon: "phone", Power: "Always picks up on the first ring", Points: 90, IconBgColor: "silver"},
	{ID: "camcorder", Name: "Camcorder", Icon: "camera", Power: "Keeps the good days on tape", Points: 150, IconColor: "rgb(52, 58, 64)"},
	{ID: "birthday-candle", Name: "Birthday Candle", Icon: "candle", Power: "One wish, fully charged", Points: 200, IconBgColor: "hsl(45, 100%, 85%)", IconColor: "orange"},
	{ID: "friendship-bracelet", Name: "Friendship Bracelet", Icon: "bracelet", Power: "Holds on through anything", Points: 80, IconBgColor: "lavender"},
}

// Catalog returns the charms that can be unlocked, in display order.
func Catalog() []domain.Charm {
	return append([]domain.Charm(nil), catalog...)
}

// CatalogCharm looks up an unlockable charm by id.
func CatalogCharm(id string) (domain.Charm, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Charm{}, false
}
