// Package derive computes everything the catalog shows from the raw
// collection. All functions are pure and never modify their input.
package derive

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lehmann314159/dreamcars/internal/models"
)

// Apply returns the visible cars: search, then brand filter, then sort.
func Apply(cars []models.Car, search, brand string, mode models.SortMode) []models.Car {
	out := make([]models.Car, 0, len(cars))

	term := strings.ToLower(search)
	for _, c := range cars {
		if term != "" && !matches(c, term) {
			continue
		}
		if brand != "" && c.Brand != brand {
			continue
		}
		out = append(out, c)
	}

	switch mode {
	case models.SortNewest:
		slices.SortStableFunc(out, func(a, b models.Car) int { return cmp.Compare(b.ID, a.ID) })
	case models.SortOldest:
		slices.SortStableFunc(out, func(a, b models.Car) int { return cmp.Compare(a.ID, b.ID) })
	case models.SortPriceHigh:
		slices.SortStableFunc(out, func(a, b models.Car) int { return cmp.Compare(b.Price, a.Price) })
	case models.SortPriceLow:
		slices.SortStableFunc(out, func(a, b models.Car) int { return cmp.Compare(a.Price, b.Price) })
	}
	return out
}

func matches(c models.Car, term string) bool {
	return strings.Contains(strings.ToLower(c.Brand), term) ||
		strings.Contains(strings.ToLower(c.Model), term) ||
		strings.Contains(strings.ToLower(c.Description), term)
}

// Summarize is computed over the full collection, not the visible one.
func Summarize(cars []models.Car) models.Stats {
	var s models.Stats
	s.Count = len(cars)
	for _, c := range cars {
		s.TotalValue += c.Price
	}
	if s.Count > 0 {
		s.AveragePrice = s.TotalValue / float64(s.Count)
	}
	return s
}

// Brands returns the distinct brands, sorted.
func Brands(cars []models.Car) []string {
	brands := make([]string, 0, len(cars))
	for _, c := range cars {
		brands = append(brands, c.Brand)
	}
	slices.Sort(brands)
	return slices.Compact(brands)
}
