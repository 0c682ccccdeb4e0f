// Package budget picks furniture for a room within a spending limit.
package budget

import (
	"strconv"
	"strings"

	"homelytics/internal/catalog"
)

const (
	// essentialSlots is how many leading priority positions count as essential.
	essentialSlots = 4

	PriorityEssential = "essential"
	PriorityOptional  = "optional"
)

// Dimensions are room measurements in feet. Height is optional.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pick is one suggested purchase.
type Pick struct {
	Name     string        `json:"name"`
	Key      string        `json:"key"`
	Price    int           `json:"price"`
	Priority string        `json:"priority"`
	Links    catalog.Links `json:"links"`
}

// RoomArea describes the floor area derived from Dimensions.
type RoomArea struct {
	AreaSqft     float64 `json:"area_sqft"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	SizeCategory string  `json:"size_category"`
}

// Suggestion is the result of a budget run.
type Suggestion struct {
	Items             []Pick    `json:"items"`
	TotalCost         int       `json:"total_cost"`
	RemainingBudget   int       `json:"remaining_budget"`
	BudgetUtilization float64   `json:"budget_utilization"`
	ItemCount         int       `json:"item_count"`
	RoomArea          *RoomArea `json:"room_area"`
}

// NormalizeRoom lowercases a room label and replaces spaces with underscores.
// Any other spelling falls back to the default room.
func NormalizeRoom(room string) string {
	return strings.ReplaceAll(strings.ToLower(room), " ", "_")
}

// Suggest walks the room's priority list once, in order, and takes every
// item whose price still fits the remaining budget. This is a greedy pass,
// not an optimal allocation.
func Suggest(cat *catalog.Catalog, room string, budget int, dims *Dimensions) Suggestion {
	priorities, _ := cat.Priorities(NormalizeRoom(room))

	res := Suggestion{Items: []Pick{}}
	remaining := budget
	for idx, key := range priorities {
		entry, ok := cat.Lookup(key)
		if !ok || entry.Price > remaining {
			continue
		}
		tag := PriorityOptional
		if idx < essentialSlots {
			tag = PriorityEssential
		}
		res.Items = append(res.Items, Pick{
			Name:     entry.Name,
			Key:      key,
			Price:    entry.Price,
			Priority: tag,
			Links:    cat.Links(key),
		})
		remaining -= entry.Price
	}

	res.TotalCost = budget - remaining
	res.RemainingBudget = remaining
	res.ItemCount = len(res.Items)
	res.BudgetUtilization = Utilization(res.TotalCost, budget)
	res.RoomArea = Area(dims)
	return res
}

// Utilization is spent/budget as a percentage rounded to one decimal,
// ties to even on the exact binary value (99.25 -> 99.2).
// It is zero for non-positive budgets.
func Utilization(spent, budget int) float64 {
	if budget <= 0 {
		return 0
	}
	pct := float64(spent) / float64(budget) * 100
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(pct, 'f', 1, 64), 64)
	if err != nil {
		return pct
	}
	return rounded
}

// Area classifies the floor area, or returns nil unless both length and
// width are set.
func Area(dims *Dimensions) *RoomArea {
	if dims == nil || dims.Length == 0 || dims.Width == 0 {
		return nil
	}
	area := dims.Length * dims.Width
	return &RoomArea{
		AreaSqft:     area,
		Length:       dims.Length,
		Width:        dims.Width,
		Height:       dims.Height,
		SizeCategory: sizeCategory(area),
	}
}

func sizeCategory(sqft float64) string {
	switch {
	case sqft < 100:
		return "small"
	case sqft < 200:
		return "medium"
	default:
		return "large"
	}
}
