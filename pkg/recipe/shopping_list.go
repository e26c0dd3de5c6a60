package recipe

import (
	"fmt"
	"foodgram/domain"
	"strings"
)

// RenderShoppingList formats the aggregated cart as the downloadable text
// document: a header, a blank line, then one "name (unit): total" line per
// ingredient.
func RenderShoppingList(items []domain.ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s): %d", item.Name, item.MeasurementUnit, item.TotalAmount))
	}
	return domain.ShoppingListHeader + "\n\n" + strings.Join(lines, "\n")
}
