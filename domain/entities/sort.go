package entities

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortOption is a value of the inventory sort dropdown
type SortOption string

const (
	SortNameAsc   SortOption = "az"
	SortNameDesc  SortOption = "za"
	SortPriceAsc  SortOption = "lohi"
	SortPriceDesc SortOption = "hilo"
)

// SortOptions lists every accepted key in dropdown order
var SortOptions = []SortOption{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}

// ParseSortOption validates a raw sort key
func ParseSortOption(s string) (SortOption, error) {
	o := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOption, s)
	}
	return o, nil
}

// Valid reports whether o is one of the four known keys
func (o SortOption) Valid() bool {
	return slices.Contains(SortOptions, o)
}

// ByPrice reports whether the key orders on price rather than name
func (o SortOption) ByPrice() bool {
	return o == SortPriceAsc || o == SortPriceDesc
}

// IsOrdered reports whether the displayed names (for az/za) or prices
// (for lohi/hilo) already follow the order o requests.
func (o SortOption) IsOrdered(names []string, prices []float64) bool {
	switch o {
	case SortNameAsc:
		return slices.IsSorted(names)
	case SortNameDesc:
		return slices.IsSortedFunc(names, func(a, b string) int { return strings.Compare(b, a) })
	case SortPriceAsc:
		return slices.IsSorted(prices)
	case SortPriceDesc:
		return slices.IsSortedFunc(prices, func(a, b float64) int { return cmp.Compare(b, a) })
	}
	return false
}
