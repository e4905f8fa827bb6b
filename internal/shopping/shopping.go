// Package shopping aggregates a cutting plan's committed boards into a
// purchase list grouped by board size and unit price.
package shopping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// LineItem is one aggregated entry of the shopping list: how many boards
// of a given size to buy at a given unit price.
type LineItem struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	UnitCost float64 `json:"unit_cost"`
	Count    int     `json:"count"`
}

// Subtotal returns the line's total price.
func (li LineItem) Subtotal() float64 {
	return float64(li.Count) * li.UnitCost
}

// Aggregate groups the plan's committed boards by (width, height, cost)
// and orders the groups by descending subtotal. Groups with equal
// subtotals keep the order of their first appearance in the plan.
func Aggregate(plan model.Plan) []LineItem {
	type key struct {
		w, h int
		cost float64
	}

	index := make(map[key]int)
	var items []LineItem
	for _, cb := range plan.Boards {
		k := key{cb.Board.Width, cb.Board.Height, cb.Board.Cost}
		if i, ok := index[k]; ok {
			items[i].Count++
			continue
		}
		index[k] = len(items)
		items = append(items, LineItem{
			Width:    cb.Board.Width,
			Height:   cb.Board.Height,
			UnitCost: cb.Board.Cost,
			Count:    1,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Subtotal() > items[j].Subtotal()
	})
	return items
}

// TotalCost sums the subtotals of all line items.
func TotalCost(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.Subtotal()
	}
	return total
}

// Format renders the shopping list as plain text.
func Format(items []LineItem) string {
	var sb strings.Builder
	sb.WriteString("Shopping list:\n")
	if len(items) == 0 {
		sb.WriteString("  (nothing to buy)\n")
		return sb.String()
	}
	for _, li := range items {
		fmt.Fprintf(&sb, "  %d x %dx%d mm @ %.2f each = %.2f\n",
			li.Count, li.Width, li.Height, li.UnitCost, li.Subtotal())
	}
	fmt.Fprintf(&sb, "Total: %.2f\n", TotalCost(items))
	return sb.String()
}
