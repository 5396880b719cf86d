package catalog

import "strings"

var emojiKeywords = []struct {
	keywords []string
	emoji    string
}{
	{[]string{"pizza"}, "🍕"},
	{[]string{"postre", "dulce", "dessert", "torta"}, "🍰"},
	{[]string{"bebida", "trago", "drink", "café", "cafe"}, "🥤"},
	{[]string{"entrada", "ensalada", "salad"}, "🥗"},
	{[]string{"pasta"}, "🍝"},
	{[]string{"principal", "carne", "parrilla", "grill"}, "🍖"},
	{[]string{"burger", "hamburguesa"}, "🍔"},
	{[]string{"pescado", "mar"}, "🐟"},
}

// EmojiFor picks a decorative glyph by keyword-matching the category name.
// Used when the admin never set one; purely cosmetic.
func EmojiFor(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range emojiKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.emoji
			}
		}
	}
	return "🍽️"
}
